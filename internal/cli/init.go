package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgdata/internal/config"
	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/internal/scaffold"
	"github.com/vvka-141/pkgdata/internal/ui"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Initialize a new pkgdata project",
	Long: `Initialize a project skeleton with a pkgdata.yaml and a package directory.

Target directory must be empty, non-existent, or hold only pkgdata.yaml
and .env (which are kept as they are).

Examples:
  pkgdata init ./myproject               # Package named myproject
  pkgdata init . --name webapp           # Initialize in current directory
  pkgdata init ./svc --template full     # With bootstrap settings and tests
  pkgdata init ./lib -m package_data.json  # Record the manifest for 'pkgdata check'

Available templates:
  basic - pkgdata.yaml and one package with a data directory
  full  - adds static files, templates, tests and bootstrap settings

Use 'pkgdata init --list' to see all available templates.`,
	Args:              OptionalRoot,
	ValidArgsFunction: completeDirectories,
	RunE:              runInit,
}

var (
	initTemplate string
	initName     string
	initList     bool
	initManifest string
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", scaffold.DefaultTemplate, "Template to use (basic, full)")
	initCmd.Flags().StringVar(&initName, "name", "", "Package name (default: derived from the target directory)")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates")
	initCmd.Flags().StringVarP(&initManifest, "manifest", "m", "", "Manifest path to record as package_data.manifest in pkgdata.yaml")

	_ = initCmd.RegisterFlagCompletionFunc("template", completeTemplateNames)
}

func runInit(cmd *cobra.Command, args []string) error {
	if initList {
		return runTemplatesList(cmd)
	}

	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}

	projectName := initName
	if projectName == "" {
		projectName = scaffold.ProjectNameFromPath(targetPath)
	}

	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	if !slices.Contains(templates, initTemplate) {
		return fmt.Errorf("invalid template '%s'. Available templates: %s\n\nUse 'pkgdata init --list' to see them: %w",
			initTemplate, strings.Join(templates, ", "), pkgdata.ErrInvalidConfig)
	}

	scaffolder := scaffold.NewScaffolder(newLogger(cmd))
	if err := scaffolder.CreateProject(projectName, initTemplate, targetPath); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	if initManifest != "" {
		if err := recordManifest(targetPath, initManifest); err != nil {
			return err
		}
	}

	out := cmd.ErrOrStderr()
	p := ui.NewPalette(isStyledWriter(out))

	fmt.Fprintf(out, "\n%s Project '%s' initialized using template '%s'\n\n", p.Render(ui.SuccessStyle, ui.SymbolSuccess), projectName, initTemplate)
	if tree, err := scaffold.BuildFileTree(filesystem.NewOSFileSystem(), targetPath); err == nil {
		fmt.Fprintln(out, "Created structure:")
		fmt.Fprint(out, tree)
	}

	fmt.Fprintln(out, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(out, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(out, "  pkgdata scan")
	if initManifest != "" {
		fmt.Fprintf(out, "  pkgdata scan -o %s && pkgdata check\n", initManifest)
	} else {
		fmt.Fprintln(out, "  pkgdata scan -o package_data.json && pkgdata check -m package_data.json")
	}

	return nil
}

// recordManifest stores manifestPath in the project's pkgdata.yaml so that
// check finds it without --manifest.
func recordManifest(projectDir, manifestPath string) error {
	projectCfg, err := config.Load(projectDir)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return err
		}
		projectCfg = &config.ProjectConfig{}
	}
	projectCfg.PackageData.Manifest = manifestPath
	return config.Save(projectDir, projectCfg)
}

func runTemplatesList(cmd *cobra.Command) error {
	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	for _, t := range templates {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}
