package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgdata/internal/config"
	"github.com/vvka-141/pkgdata/internal/logging"
	"github.com/vvka-141/pkgdata/internal/manifest"
	"github.com/vvka-141/pkgdata/internal/ui"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// loadProjectConfig loads the project's .env and pkgdata.yaml, then applies
// PKGDATA_* overrides. A missing pkgdata.yaml yields an empty config.
func loadProjectConfig(projectDir string) (*config.ProjectConfig, error) {
	if err := config.LoadDotEnv(projectDir); err != nil {
		return nil, fmt.Errorf("%w: %w", pkgdata.ErrInvalidConfig, err)
	}

	projectCfg, err := config.Load(projectDir)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
		projectCfg = &config.ProjectConfig{}
	}

	projectCfg.ApplyEnv(os.LookupEnv)
	return projectCfg, nil
}

// resolveFormat picks the output format: --format, then config, then fallback.
func resolveFormat(cmd *cobra.Command, flagValue string, projectCfg *config.ProjectConfig, fallback manifest.Format) (manifest.Format, error) {
	switch {
	case cmd.Flags().Changed("format"):
		return manifest.ParseFormat(flagValue)
	case projectCfg.Format != "":
		return manifest.ParseFormat(projectCfg.Format)
	}
	return fallback, nil
}

// resolveRoot returns the scan root: the positional argument if given,
// otherwise the configured root relative to the project directory.
func resolveRoot(args []string, projectDir string, projectCfg *config.ProjectConfig) string {
	if len(args) > 0 {
		return args[0]
	}
	root := projectCfg.Root()
	if projectDir == "." || filepath.IsAbs(root) {
		return root
	}
	return filepath.Join(projectDir, root)
}

// resolveProjectPath interprets a path from pkgdata.yaml relative to the project directory.
func resolveProjectPath(projectDir, p string) string {
	if projectDir == "." || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectDir, p)
}

// newLogger builds the console logger for cmd.
func newLogger(cmd *cobra.Command) pkgdata.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// isStyledWriter reports whether w is a terminal that should receive styled output.
func isStyledWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsStyled(f)
}

// writeOutputFile writes data to path through a billy filesystem rooted at
// the file's directory, creating parent directories as needed.
func writeOutputFile(path string, data []byte) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", pkgdata.ErrOutputFailed, err)
	}
	fsys := osfs.New(filepath.Dir(abs))
	if err := util.WriteFile(fsys, filepath.Base(abs), data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", pkgdata.ErrOutputFailed, path, err)
	}
	return nil
}
