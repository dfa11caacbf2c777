package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/config"
)

// defaultInitProjectID is written to [project].id when --id is not given.
const defaultInitProjectID = "1"

// Flag values for the init subcommand.
var (
	initFlagName  string
	initFlagID    string
	initFlagForce bool
)

// initCmd implements "gantry init [template]".
// It scaffolds gantry.toml from an embedded template without requiring an
// existing configuration, so it is safe to run in a fresh directory.
var initCmd = &cobra.Command{
	Use:   "init [template]",
	Short: "Create a gantry.toml from a template",
	Long: `Create a gantry.toml in the current directory by rendering an embedded
template. Existing files are preserved unless --force is supplied.

Templates:
  http   read the project from the Gantt REST API (default)
  file   read the project from local JSON files; sample data included

Examples:
  gantry init                                  # http template, project 1
  gantry init --id 42 --api-url http://gantt:8080/api/v1
  gantry init file --name "Apollo"             # local files with sample tasks
  gantry init file --force                     # overwrite existing files`,
	Args: cobra.MaximumNArgs(1),

	// init must never load gantry.toml, so it only repeats the root's
	// environment, logging, color and --dir handling.
	PersistentPreRunE: persistentPreRun,

	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initFlagName, "name", "n", "", "Project name (defaults to current directory name)")
	initCmd.Flags().StringVar(&initFlagID, "id", defaultInitProjectID, "Project id written to [project].id")
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	templateName := config.DefaultTemplate
	if len(args) > 0 {
		templateName = args[0]
	}

	if !config.TemplateExists(templateName) {
		available, listErr := config.ListTemplates()
		if listErr != nil {
			return fmt.Errorf("listing available templates: %w", listErr)
		}
		return fmt.Errorf("template %q not found; available templates: %s",
			templateName, strings.Join(available, ", "))
	}

	destDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	projectName := initFlagName
	if projectName == "" {
		projectName = filepath.Base(destDir)
	}
	if strings.ContainsAny(projectName, "\"\\\n") {
		return fmt.Errorf("invalid project name %q: must not contain quotes, backslashes or newlines", projectName)
	}

	projectID := strings.TrimSpace(initFlagID)
	if projectID == "" || strings.ContainsAny(projectID, "\"\\/ \n") {
		return fmt.Errorf("invalid project id %q", initFlagID)
	}

	apiURL := config.DefaultAPIURL
	if flagAPIURL != "" {
		apiURL = flagAPIURL
	}

	cfgPath := filepath.Join(destDir, config.ConfigFileName)
	if _, statErr := os.Stat(cfgPath); statErr == nil && !initFlagForce {
		return fmt.Errorf("%s already exists in %s; use --force to overwrite", config.ConfigFileName, destDir)
	}

	vars := config.TemplateVars{
		ProjectID:   projectID,
		ProjectName: projectName,
		APIURL:      apiURL,
	}

	created, err := config.RenderTemplate(templateName, destDir, vars, initFlagForce)
	if err != nil {
		return fmt.Errorf("rendering template %q: %w", templateName, err)
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Initialized project %q (id %s) from template %q\n\n", projectName, projectID, templateName)

	if len(created) > 0 {
		fmt.Fprintln(stderr, "Created files:")
		for _, f := range created {
			rel, relErr := filepath.Rel(destDir, f)
			if relErr != nil {
				rel = f
			}
			fmt.Fprintf(stderr, "  %s\n", rel)
		}
		fmt.Fprintln(stderr)
	}

	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  1. Review %s\n", cfgPath)
	fmt.Fprintln(stderr, "  2. Check it with: gantry config validate")
	fmt.Fprintln(stderr, "  3. List tasks with: gantry tasks")

	return nil
}
