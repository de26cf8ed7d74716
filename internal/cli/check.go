package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/internal/manifest"
	"github.com/vvka-141/pkgdata/internal/ui"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

var checkCmd = &cobra.Command{
	Use:   "check [root]",
	Short: "Verify a stored manifest against the source tree",
	Long: `Scan the source tree and compare the result with a stored manifest
(JSON or YAML, chosen by extension). Exits with code 12 and prints the
added and removed files when they differ.

With --strict the stored file must also match a fresh rendering byte for
byte, ignoring line endings and trailing whitespace.

Examples:
  pkgdata check --manifest package_data.json
  pkgdata check ./src -m manifest.yaml --strict
  pkgdata check                          # Uses package_data.manifest from pkgdata.yaml`,
	Args:              OptionalRoot,
	ValidArgsFunction: completeDirectories,
	RunE:              runCheck,
}

var (
	checkFlags    scanFlagValues
	checkManifest string
	checkStrict   bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	registerScanOptionFlags(checkCmd, &checkFlags)
	checkCmd.Flags().StringVarP(&checkManifest, "manifest", "m", "", "Stored manifest file (.json, .yaml or .yml)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Also require the stored file to match a fresh rendering")
}

func runCheck(cmd *cobra.Command, args []string) error {
	projectDir := getProjectFlag(cmd)
	projectCfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return err
	}

	manifestPath := checkManifest
	if manifestPath == "" {
		if projectCfg.PackageData.Manifest == "" {
			return fmt.Errorf("no manifest to check: pass --manifest or set package_data.manifest in pkgdata.yaml: %w", pkgdata.ErrInvalidConfig)
		}
		manifestPath = resolveProjectPath(projectDir, projectCfg.PackageData.Manifest)
	}

	stored, raw, err := manifest.Load(filesystem.NewOSFileSystem(), manifestPath)
	if err != nil {
		return err
	}

	current, err := scanProject(cmd, args, checkFlags, projectCfg)
	if err != nil {
		return err
	}

	styled := isStyledWriter(cmd.ErrOrStderr())
	p := ui.NewPalette(styled)

	if diff := manifest.Compare(stored, current); !diff.Empty() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s is out of date\n", p.Render(ui.ErrorStyle, ui.SymbolError), manifestPath)
		if err := manifest.WriteDiff(cmd.ErrOrStderr(), diff, styled); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s does not match the source tree", pkgdata.ErrManifestDrift, manifestPath)
	}

	if checkStrict {
		format, err := manifest.FormatForPath(manifestPath)
		if err != nil {
			return err
		}
		rendered, err := manifest.Marshal(current, format, false)
		if err != nil {
			return err
		}
		if !manifest.SameRendering(raw, rendered) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s has the right entries but is not formatted as pkgdata writes it\n", p.Render(ui.WarningStyle, ui.SymbolError), manifestPath)
			return fmt.Errorf("%w: %s formatting differs; regenerate it with pkgdata scan -o %s", pkgdata.ErrManifestDrift, manifestPath, manifestPath)
		}
	}

	id, err := manifest.ID(current)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s is up to date (%d package(s), %d file(s), id %s)\n",
		p.Render(ui.SuccessStyle, ui.SymbolSuccess), manifestPath, current.Len(), current.FileCount(), id)
	return nil
}
