package config

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
)

//go:embed all:templates
var templateFS embed.FS

// templatesRoot is the top-level directory in the embedded FS that contains
// all starter templates.
const templatesRoot = "templates"

// DefaultTemplate is the template used by "gantry init" without arguments.
const DefaultTemplate = "http"

// TemplateVars holds variables available to .tmpl files. Other files are
// copied as-is.
type TemplateVars struct {
	// ProjectID is written to [project].id.
	ProjectID string
	// ProjectName is written to [project].name.
	ProjectName string
	// APIURL is written to [source].api_url.
	APIURL string
}

// ListTemplates returns the names of the embedded starter templates.
func ListTemplates() ([]string, error) {
	entries, err := templateFS.ReadDir(templatesRoot)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// TemplateExists reports whether name is an embedded template.
func TemplateExists(name string) bool {
	info, err := fs.Stat(templateFS, path.Join(templatesRoot, name))
	return err == nil && info.IsDir()
}

// RenderTemplate writes the named template's files into destDir and returns
// the paths written. A ".tmpl" file is executed with vars and loses the
// extension; anything else is copied unchanged. Files already present in
// destDir are left alone unless force is set.
func RenderTemplate(name string, destDir string, vars TemplateVars, force bool) ([]string, error) {
	if !TemplateExists(name) {
		return nil, fmt.Errorf("template %q not found", name)
	}
	src, err := fs.Sub(templateFS, path.Join(templatesRoot, name))
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", name, err)
	}

	logger := logging.New("config")
	var created []string
	err = fs.WalkDir(src, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		dest := filepath.Join(destDir, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))
		if _, statErr := os.Stat(dest); statErr == nil && !force {
			logger.Debug("keeping existing file", "path", dest)
			return nil
		}

		content, err := renderFile(src, rel, vars)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", dest, err)
		}
		if err := os.WriteFile(dest, content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}

		logger.Debug("wrote template file", "path", dest)
		created = append(created, dest)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// renderFile returns the bytes to write for rel.
func renderFile(src fs.FS, rel string, vars TemplateVars) ([]byte, error) {
	raw, err := fs.ReadFile(src, rel)
	if err != nil {
		return nil, fmt.Errorf("reading template file %s: %w", rel, err)
	}
	if !strings.HasSuffix(rel, ".tmpl") {
		return raw, nil
	}

	tmpl, err := template.New(path.Base(rel)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rel, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("executing %s: %w", rel, err)
	}
	return buf.Bytes(), nil
}
