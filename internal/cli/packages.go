package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/internal/files/pattern"
	"github.com/vvka-141/pkgdata/internal/files/scanner"
	"github.com/vvka-141/pkgdata/internal/manifest"
	"github.com/vvka-141/pkgdata/internal/ui"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

var packagesCmd = &cobra.Command{
	Use:   "packages [root]",
	Short: "List the packages under a source tree",
	Long: `List every package below root in breadth-first order, as dotted names.

Only directories holding the marker file are packages, and only packages are
searched for subpackages. Directory names containing a dot are never
packages. Exclude patterns are case-insensitive globs over dotted names.

Examples:
  pkgdata packages                       # Packages under the configured root
  pkgdata packages ./src --exclude 'tests' --exclude 'tests.*'
  pkgdata packages -f json               # JSON array`,
	Args:              OptionalRoot,
	ValidArgsFunction: completeDirectories,
	RunE:              runPackages,
}

var (
	packagesFormat  string
	packagesExclude []string
	packagesMarker  string
)

func init() {
	rootCmd.AddCommand(packagesCmd)

	packagesCmd.Flags().StringVarP(&packagesFormat, "format", "f", string(manifest.FormatText), "Output format (json, yaml, text)")
	packagesCmd.Flags().StringArrayVar(&packagesExclude, "exclude", nil, "Package name pattern to exclude (repeatable)")
	packagesCmd.Flags().StringVar(&packagesMarker, "marker", "", "File that marks a directory as a package (default __init__.py)")

	_ = packagesCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runPackages(cmd *cobra.Command, args []string) error {
	projectDir := getProjectFlag(cmd)
	projectCfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cmd, packagesFormat, projectCfg, manifest.FormatText)
	if err != nil {
		return err
	}

	opts := projectCfg.PackageOptions()
	opts.Exclude = append(opts.Exclude, packagesExclude...)
	if cmd.Flags().Changed("marker") {
		opts.Marker = packagesMarker
	}
	if _, err := pattern.Compile(opts.Exclude); err != nil {
		return err
	}

	root := resolveRoot(args, projectDir, projectCfg)
	newLogger(cmd).Verbose("Finding packages under %s", root)

	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), cmd.ErrOrStderr())
	packages, err := s.FindPackages(root, opts)
	if err != nil {
		return err
	}

	data, err := renderPackages(packages, format, isStyledWriter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("%w: %w", pkgdata.ErrOutputFailed, err)
	}
	return nil
}

// renderPackages formats a package list; JSON and YAML produce a plain sequence.
func renderPackages(packages []string, format manifest.Format, styled bool) ([]byte, error) {
	if packages == nil {
		packages = []string{}
	}

	switch format {
	case manifest.FormatJSON:
		data, err := json.MarshalIndent(packages, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case manifest.FormatYAML:
		return yaml.Marshal(packages)
	}

	p := ui.NewPalette(styled)
	var buf bytes.Buffer
	for _, pkg := range packages {
		buf.WriteString(p.Render(ui.PackageStyle, pkg))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
