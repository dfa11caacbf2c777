package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the name of the Gantry configuration file.
const ConfigFileName = "gantry.toml"

// FindConfigFile walks up from startDir looking for gantry.toml and returns
// its absolute path, or "" when the filesystem root is reached first.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromFile decodes the TOML file at path. The returned metadata reports
// unknown keys through MetaData.Undecoded.
func LoadFromFile(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("loading config %s: %w", path, err)
	}
	return &cfg, md, nil
}

// LoadFromString decodes TOML text. Used by tests and by "config validate"
// when reading from stdin.
func LoadFromString(data string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, md, nil
}
