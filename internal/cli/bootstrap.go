package cli

import (
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgdata/internal/bootstrap"
	"github.com/vvka-141/pkgdata/internal/config"
	"github.com/vvka-141/pkgdata/internal/files/filesystem"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Generate a script that sets up a virtual environment",
	Long: `Generate a POSIX shell script that creates a Python virtual environment,
installs the project and the listed packages into it, then runs a command.

Values come from the bootstrap section of pkgdata.yaml; flags override them.
--package adds to the configured list. Variables from --env-file are exported
at the top of the script.

Examples:
  pkgdata bootstrap                                  # Write bootstrap.sh
  pkgdata bootstrap --package requests --install-self
  pkgdata bootstrap --command "pytest -q" --dry-run -v`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

var (
	bootstrapScriptName  string
	bootstrapPython      string
	bootstrapEnvDir      string
	bootstrapPackages    []string
	bootstrapInstallSelf bool
	bootstrapCommandLine string
	bootstrapEnvFile     string
	bootstrapDryRun      bool
)

func init() {
	rootCmd.AddCommand(bootstrapCmd)

	bootstrapCmd.Flags().StringVar(&bootstrapScriptName, "script-name", bootstrap.DefaultScriptName, "Name of the generated script")
	bootstrapCmd.Flags().StringVar(&bootstrapPython, "python", bootstrap.DefaultPython, "Interpreter used to create the environment")
	bootstrapCmd.Flags().StringVar(&bootstrapEnvDir, "env-dir", bootstrap.DefaultEnvDir, "Virtual environment directory")
	bootstrapCmd.Flags().StringArrayVar(&bootstrapPackages, "package", nil, "Package to install (repeatable)")
	bootstrapCmd.Flags().BoolVar(&bootstrapInstallSelf, "install-self", false, "Install the project itself in editable mode")
	bootstrapCmd.Flags().StringVar(&bootstrapCommandLine, "command", "", "Command to run inside the environment after installing")
	bootstrapCmd.Flags().StringVar(&bootstrapEnvFile, "env-file", "", "Dotenv file whose variables the script exports")
	bootstrapCmd.Flags().BoolVar(&bootstrapDryRun, "dry-run", false, "Show what would be written without writing it")
}

// buildBootstrapOptions merges flags over the bootstrap section of the config.
func buildBootstrapOptions(cmd *cobra.Command, projectDir string, bc config.BootstrapConfig) (bootstrap.Options, error) {
	opts := bootstrap.Options{
		ScriptName:        bc.ScriptName,
		Python:            bc.Python,
		EnvDir:            bc.EnvDir,
		PackagesToInstall: append([]string(nil), bc.Packages...),
		InstallSelf:       bc.InstallSelf,
		CommandLine:       bc.CommandLine,
	}

	flags := cmd.Flags()
	if flags.Changed("script-name") {
		opts.ScriptName = bootstrapScriptName
	}
	if flags.Changed("python") {
		opts.Python = bootstrapPython
	}
	if flags.Changed("env-dir") {
		opts.EnvDir = bootstrapEnvDir
	}
	if flags.Changed("install-self") {
		opts.InstallSelf = bootstrapInstallSelf
	}
	if flags.Changed("command") {
		opts.CommandLine = bootstrapCommandLine
	}
	opts.PackagesToInstall = append(opts.PackagesToInstall, bootstrapPackages...)

	envFile := bc.EnvFile
	if envFile != "" {
		envFile = resolveProjectPath(projectDir, envFile)
	}
	if flags.Changed("env-file") {
		envFile = bootstrapEnvFile
	}
	if envFile != "" {
		env, err := bootstrap.LoadEnvFile(filesystem.NewOSFileSystem(), envFile)
		if err != nil {
			return opts, err
		}
		opts.Env = env
	}

	return opts, nil
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	projectDir := getProjectFlag(cmd)
	projectCfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return err
	}

	opts, err := buildBootstrapOptions(cmd, projectDir, projectCfg.Bootstrap)
	if err != nil {
		return err
	}

	return bootstrap.Write(osfs.New(projectDir), opts, bootstrapDryRun, newLogger(cmd))
}
