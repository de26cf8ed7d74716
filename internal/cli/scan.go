package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgdata/internal/config"
	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/internal/files/pattern"
	"github.com/vvka-141/pkgdata/internal/files/scanner"
	"github.com/vvka-141/pkgdata/internal/manifest"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "List package data files under a source tree",
	Long: `Scan a source tree and print the package-data manifest: every package
mapped to the data files it owns, relative to the package directory.

Directories are matched against the directory excludes before anything else.
A directory holding the marker file (default __init__.py) starts a package
named parent.child; plain directories add their name to the file paths of
the enclosing package. Files outside any package are dropped unless
--only-in-packages=false.

Patterns are case-insensitive shell globs (*, ?, [seq], [!seq]) matched
against the bare name, or an exact path such as ./build.

Examples:
  pkgdata scan                          # Scan the configured root (default .)
  pkgdata scan ./src -f yaml            # YAML output
  pkgdata scan -o package_data.json     # Write the manifest to a file
  pkgdata scan --exclude '*.tmp'        # Add a file exclude pattern
  pkgdata scan --show-ignored           # Report every excluded entry`,
	Args:              OptionalRoot,
	ValidArgsFunction: completeDirectories,
	RunE:              runScan,
}

type scanFlagValues struct {
	format             string
	output             string
	pkg                string
	marker             string
	exclude            []string
	excludeDirectories []string
	noStandardExcludes bool
	onlyInPackages     bool
	showIgnored        bool
	printID            bool
}

var scanFlags scanFlagValues

func init() {
	rootCmd.AddCommand(scanCmd)

	registerScanOptionFlags(scanCmd, &scanFlags)
	scanCmd.Flags().StringVarP(&scanFlags.format, "format", "f", string(manifest.FormatJSON), "Output format (json, yaml, text)")
	scanCmd.Flags().StringVarP(&scanFlags.output, "output", "o", "", "Write the manifest to a file instead of stdout")
	scanCmd.Flags().BoolVar(&scanFlags.printID, "id", false, "Print the manifest fingerprint and ID to stderr")

	_ = scanCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// registerScanOptionFlags adds the flags that shape a scan. Shared by scan and check.
func registerScanOptionFlags(cmd *cobra.Command, v *scanFlagValues) {
	cmd.Flags().StringVarP(&v.pkg, "package", "p", "", "Package name of the scan root")
	cmd.Flags().StringVar(&v.marker, "marker", "", "File that marks a directory as a package (default __init__.py)")
	cmd.Flags().StringArrayVar(&v.exclude, "exclude", nil, "Additional file exclude pattern (repeatable)")
	cmd.Flags().StringArrayVar(&v.excludeDirectories, "exclude-dir", nil, "Additional directory exclude pattern (repeatable)")
	cmd.Flags().BoolVar(&v.noStandardExcludes, "no-standard-excludes", false, "Drop the built-in and configured exclude lists")
	cmd.Flags().BoolVar(&v.onlyInPackages, "only-in-packages", true, "Drop files that are not inside a package")
	cmd.Flags().BoolVar(&v.showIgnored, "show-ignored", false, "Report excluded files and directories on stderr")
}

// buildScanOptions merges flags over the project config.
func buildScanOptions(cmd *cobra.Command, v scanFlagValues, projectCfg *config.ProjectConfig) (pkgdata.ScanOptions, error) {
	opts := projectCfg.ScanOptions()

	if v.noStandardExcludes {
		opts.Exclude = nil
		opts.ExcludeDirectories = nil
	}
	opts.Exclude = append(opts.Exclude, v.exclude...)
	opts.ExcludeDirectories = append(opts.ExcludeDirectories, v.excludeDirectories...)

	if cmd.Flags().Changed("package") {
		opts.Package = v.pkg
	}
	if cmd.Flags().Changed("marker") {
		opts.Marker = v.marker
	}
	if cmd.Flags().Changed("only-in-packages") {
		opts.OnlyInPackages = v.onlyInPackages
	}
	if cmd.Flags().Changed("show-ignored") {
		opts.ShowIgnored = v.showIgnored
	}

	if _, err := pattern.Compile(opts.Exclude); err != nil {
		return opts, err
	}
	if _, err := pattern.Compile(opts.ExcludeDirectories); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// scanProject resolves the root and options for cmd and runs the scan.
func scanProject(cmd *cobra.Command, args []string, v scanFlagValues, projectCfg *config.ProjectConfig) (*pkgdata.Manifest, error) {
	log := newLogger(cmd)
	root := resolveRoot(args, getProjectFlag(cmd), projectCfg)

	opts, err := buildScanOptions(cmd, v, projectCfg)
	if err != nil {
		return nil, err
	}

	log.Verbose("Scanning %s (package %q, marker %s)", root, opts.Package, opts.Marker)
	log.Verbose("File excludes: %v", opts.Exclude)
	log.Verbose("Directory excludes: %v", opts.ExcludeDirectories)

	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), cmd.ErrOrStderr())
	m, err := s.FindPackageData(root, opts)
	if err != nil {
		return nil, err
	}

	log.Verbose("Found %d package(s) with %d file(s)", m.Len(), m.FileCount())
	return m, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(getProjectFlag(cmd))
	if err != nil {
		return err
	}

	format, err := resolveFormat(cmd, scanFlags.format, projectCfg, manifest.FormatJSON)
	if err != nil {
		return err
	}

	m, err := scanProject(cmd, args, scanFlags, projectCfg)
	if err != nil {
		return err
	}

	if scanFlags.printID {
		fp, err := manifest.Fingerprint(m)
		if err != nil {
			return err
		}
		id, err := manifest.ID(m)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "fingerprint: %s\nid: %s\n", fp, id)
	}

	if scanFlags.output == "" {
		return manifest.Render(cmd.OutOrStdout(), m, format, isStyledWriter(cmd.OutOrStdout()))
	}

	var buf bytes.Buffer
	if err := manifest.Render(&buf, m, format, false); err != nil {
		return err
	}
	if err := writeOutputFile(scanFlags.output, buf.Bytes()); err != nil {
		return err
	}
	newLogger(cmd).Info("Wrote %s (%d package(s), %d file(s))", scanFlags.output, m.Len(), m.FileCount())
	return nil
}
