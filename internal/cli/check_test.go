package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

func TestCheck_UpToDate(t *testing.T) {
	root := sampleProject(t)
	stored := filepath.Join(t.TempDir(), "package_data.json")

	_, _, err := executeCommand(t, "scan", root, "-o", stored)
	require.NoError(t, err)

	_, stderr, err := executeCommand(t, "check", root, "--manifest", stored)
	require.NoError(t, err)
	assert.Contains(t, stderr, "is up to date (2 package(s), 3 file(s), id ")
}

func TestCheck_Drift(t *testing.T) {
	root := sampleProject(t)
	stored := filepath.Join(t.TempDir(), "package_data.yaml")

	_, _, err := executeCommand(t, "scan", root, "-f", "yaml", "-o", stored)
	require.NoError(t, err)

	writeTree(t, root, map[string]string{"pkg/new.txt": "new"})
	require.NoError(t, os.Remove(filepath.Join(root, "pkg", "sub", "more.dat")))

	_, stderr, err := executeCommand(t, "check", root, "-m", stored)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgdata.ErrManifestDrift)
	assert.Equal(t, pkgdata.ExitManifestDrift, pkgdata.ExitCodeForError(err))

	assert.Contains(t, stderr, "is out of date")
	assert.Contains(t, stderr, "pkg\n  + new.txt\n")
	assert.Contains(t, stderr, "pkg.sub\n  - more.dat\n")
}

func TestCheck_StrictFormatting(t *testing.T) {
	root := sampleProject(t)
	dir := t.TempDir()
	stored := filepath.Join(dir, "package_data.json")

	_, _, err := executeCommand(t, "scan", root, "-o", stored)
	require.NoError(t, err)

	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	crlf := bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	require.NoError(t, os.WriteFile(stored, crlf, 0644))

	_, _, err = executeCommand(t, "check", root, "-m", stored, "--strict")
	require.NoError(t, err, "line endings are not significant")

	compact := `{"pkg":["data.txt","templates/index.html"],"pkg.sub":["more.dat"]}`
	require.NoError(t, os.WriteFile(stored, []byte(compact), 0644))

	_, _, err = executeCommand(t, "check", root, "-m", stored)
	require.NoError(t, err, "entries match without --strict")

	_, _, err = executeCommand(t, "check", root, "-m", stored, "--strict")
	assert.ErrorIs(t, err, pkgdata.ErrManifestDrift)
}

func TestCheck_ManifestFromConfig(t *testing.T) {
	project := sampleProject(t)
	writeTree(t, project, map[string]string{"pkgdata.yaml": "package_data:\n  manifest: package_data.json\n"})

	_, _, err := executeCommand(t, "scan", project, "-o", filepath.Join(project, "package_data.json"))
	require.NoError(t, err)

	_, _, err = executeCommand(t, "check", "-C", project)
	require.NoError(t, err)
}

func TestCheck_NoManifest(t *testing.T) {
	_, _, err := executeCommand(t, "check", "-C", t.TempDir())
	assert.ErrorIs(t, err, pkgdata.ErrInvalidConfig)
}

func TestCheck_UnsupportedExtension(t *testing.T) {
	_, _, err := executeCommand(t, "check", t.TempDir(), "-m", "manifest.txt")
	assert.ErrorIs(t, err, pkgdata.ErrInvalidConfig)
}
