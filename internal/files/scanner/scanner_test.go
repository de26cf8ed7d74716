package scanner

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

//go:embed all:testdata
var testdataFS embed.FS

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem, *bytes.Buffer) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	var diag bytes.Buffer
	return NewScannerWithFS(mfs, &diag), mfs, &diag
}

// addExampleTree builds the canonical layout:
//
//	a.py
//	pkg/__init__.py
//	pkg/data.txt
//	pkg/sub/more.dat
//	notpkg/x.dat
func addExampleTree(mfs *filesystem.MemoryFileSystem) {
	mfs.AddFile("a.py", "")
	mfs.AddFile("pkg/__init__.py", "")
	mfs.AddFile("pkg/data.txt", "data")
	mfs.AddFile("pkg/sub/more.dat", "more")
	mfs.AddFile("notpkg/x.dat", "x")
}

func TestNewScannerWithFS_NilFS(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil filesystem")
		}
	}()
	NewScannerWithFS(nil, nil)
}

func TestFindPackageData_OnlyInPackages(t *testing.T) {
	s, mfs, _ := newTestScanner()
	addExampleTree(mfs)

	m, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg"}, m.Packages())
	assert.Equal(t, []string{"data.txt", "sub/more.dat"}, m.Files("pkg"))
}

func TestFindPackageData_AllFiles(t *testing.T) {
	s, mfs, _ := newTestScanner()
	addExampleTree(mfs)
	mfs.AddFile("README.txt", "readme")

	opts := pkgdata.DefaultScanOptions()
	opts.OnlyInPackages = false

	m, err := s.FindPackageData("/project", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "pkg"}, m.Packages())
	assert.Equal(t, []string{"README.txt", "notpkg/x.dat"}, m.Files(""))
	assert.Equal(t, []string{"data.txt", "sub/more.dat"}, m.Files("pkg"))
}

func TestFindPackageData_AllFilesStillExcludes(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("a.py", "")

	opts := pkgdata.DefaultScanOptions()
	opts.OnlyInPackages = false

	m, err := s.FindPackageData("/project", opts)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len(), "a.py matches *.py even outside packages")
}

func TestFindPackageData_NestedPackages(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("pkg/__init__.py", "")
	mfs.AddFile("pkg/top.txt", "")
	mfs.AddFile("pkg/inner/__init__.py", "")
	mfs.AddFile("pkg/inner/inner.txt", "")
	mfs.AddFile("pkg/inner/res/icon.png", "")
	mfs.AddFile("pkg/plain/deep/__init__.py", "")
	mfs.AddFile("pkg/plain/deep/deep.txt", "")
	mfs.AddFile("pkg/plain/loose.txt", "")

	m, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"top.txt", "plain/loose.txt"}, m.Files("pkg"))
	assert.Equal(t, []string{"inner.txt", "res/icon.png"}, m.Files("pkg.inner"))
	// A package below a plain directory is named after its enclosing package.
	assert.Equal(t, []string{"deep.txt"}, m.Files("pkg.deep"))
	assert.Equal(t, []string{"pkg", "pkg.inner", "pkg.deep"}, m.Packages())
}

func TestFindPackageData_InitialPackage(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("root.txt", "")
	mfs.AddFile("assets/logo.svg", "")
	mfs.AddFile("child/__init__.py", "")
	mfs.AddFile("child/c.txt", "")

	opts := pkgdata.DefaultScanOptions()
	opts.Package = "myproj"

	m, err := s.FindPackageData("/project", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"root.txt", "assets/logo.svg"}, m.Files("myproj"))
	assert.Equal(t, []string{"c.txt"}, m.Files("myproj.child"))
}

func TestFindPackageData_ExcludedFilesNeverAppear(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("pkg/__init__.py", "")
	mfs.AddFile("pkg/keep.dat", "")
	mfs.AddFile("pkg/notes.txt", "")
	mfs.AddFile("pkg/sub/other.txt", "")
	mfs.AddFile("pkg/inner/__init__.py", "")
	mfs.AddFile("pkg/inner/deep.TXT", "")
	mfs.AddFile("pkg/module.pyc", "")
	mfs.AddFile("pkg/draft.bak", "")
	mfs.AddFile("pkg/edit.swp", "")
	mfs.AddFile("pkg/.hidden", "")
	mfs.AddFile("pkg/backup~", "")

	opts := pkgdata.DefaultScanOptions()
	opts.Exclude = append(opts.Exclude, "*.txt")

	m, err := s.FindPackageData("/project", opts)
	require.NoError(t, err)

	for _, pkg := range m.Packages() {
		for _, f := range m.Files(pkg) {
			base := f[strings.LastIndex(f, "/")+1:]
			for _, p := range opts.Exclude {
				matched, _ := filepath.Match(strings.ToLower(p), strings.ToLower(base))
				assert.False(t, matched, "%s/%s should be excluded by %s", pkg, f, p)
			}
		}
	}
	assert.Equal(t, []string{"keep.dat"}, m.Files("pkg"))
	assert.False(t, m.Has("pkg.inner"))
}

func TestFindPackageData_ExcludedDirectories(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("pkg/__init__.py", "")
	mfs.AddFile("pkg/.git/config", "")
	mfs.AddFile("pkg/CVS/Entries", "")
	mfs.AddFile("pkg/_darcs/patch", "")
	mfs.AddFile("pkg/Demo.egg-info/PKG-INFO", "")
	mfs.AddFile("pkg/EGG-INFO/top_level.txt", "")
	mfs.AddFile("pkg/build/keep.txt", "")
	mfs.AddFile("build/__init__.py", "")
	mfs.AddFile("build/out.txt", "")
	mfs.AddFile("dist/__init__.py", "")
	mfs.AddFile("dist/wheel.txt", "")

	m, err := s.FindPackageData(".", pkgdata.DefaultScanOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg"}, m.Packages(), "./build and ./dist are excluded at the top level only")
	assert.Equal(t, []string{"build/keep.txt"}, m.Files("pkg"))
}

func TestFindPackageData_CaseInsensitive(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("pkg/__init__.py", "")
	mfs.AddFile("pkg/foo.py", "")
	mfs.AddFile("pkg/Keep.dat", "")
	mfs.AddFile("pkg/Secret.DAT", "")

	opts := pkgdata.DefaultScanOptions()
	opts.Exclude = []string{"*.PY", "/PROJECT/PKG/secret.dat"}

	m, err := s.FindPackageData("/project", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"Keep.dat"}, m.Files("pkg"))
}

func TestFindPackageData_ShowIgnored(t *testing.T) {
	s, mfs, diag := newTestScanner()
	addExampleTree(mfs)
	mfs.AddFile("pkg/.git/HEAD", "")

	opts := pkgdata.DefaultScanOptions()
	opts.ShowIgnored = true

	m, err := s.FindPackageData("/project", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"data.txt", "sub/more.dat"}, m.Files("pkg"))

	expected := "Directory /project/pkg/.git ignored by pattern .*\n" +
		"File /project/pkg/__init__.py ignored by pattern *.py\n"
	assert.Equal(t, expected, diag.String(), "suppressed top-level files are not reported")
}

func TestFindPackageData_QuietByDefault(t *testing.T) {
	s, mfs, diag := newTestScanner()
	addExampleTree(mfs)

	_, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.NoError(t, err)
	assert.Empty(t, diag.String())
}

func TestFindPackageData_CustomMarker(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("lib/PACKAGE", "")
	mfs.AddFile("lib/asset.bin", "")
	mfs.AddFile("other/__init__.py", "")
	mfs.AddFile("other/asset.bin", "")

	opts := pkgdata.DefaultScanOptions()
	opts.Marker = "PACKAGE"

	m, err := s.FindPackageData("/project", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"lib"}, m.Packages())
	assert.Equal(t, []string{"PACKAGE", "asset.bin"}, m.Files("lib"))
}

func TestFindPackageData_MarkerDirectoryIsNotPackage(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddDir("pkg/__init__.py")
	mfs.AddFile("pkg/data.txt", "")

	m, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestFindPackageData_EmptyTree(t *testing.T) {
	s, _, _ := newTestScanner()

	m, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Len())
}

func TestFindPackageData_Idempotent(t *testing.T) {
	s, mfs, _ := newTestScanner()
	addExampleTree(mfs)
	mfs.AddFile("pkg/z/__init__.py", "")
	mfs.AddFile("pkg/z/b.txt", "")
	mfs.AddFile("pkg/z/a.txt", "")

	first, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.NoError(t, err)
	second, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestFindPackageData_ListingFailure(t *testing.T) {
	s, mfs, _ := newTestScanner()
	addExampleTree(mfs)
	mfs.FailOn("pkg/sub", fs.ErrPermission)

	m, err := s.FindPackageData("/project", pkgdata.DefaultScanOptions())
	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.True(t, errors.Is(err, pkgdata.ErrScanFailed))
	assert.Contains(t, err.Error(), "/project/pkg/sub")
}

func TestFindPackageData_NonexistentRoot(t *testing.T) {
	s, _, _ := newTestScanner()

	_, err := s.FindPackageData("/nonexistent", pkgdata.DefaultScanOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFindPackageData_MalformedPattern(t *testing.T) {
	s, mfs, _ := newTestScanner()
	addExampleTree(mfs)

	opts := pkgdata.DefaultScanOptions()
	opts.ExcludeDirectories = []string{"build", ""}

	_, err := s.FindPackageData("/project", opts)
	assert.ErrorIs(t, err, pkgdata.ErrInvalidPattern)
}

func TestFindPackageData_InvalidOptions(t *testing.T) {
	s, _, _ := newTestScanner()

	opts := pkgdata.DefaultScanOptions()
	opts.Marker = "nested/__init__.py"

	_, err := s.FindPackageData("/project", opts)
	assert.ErrorIs(t, err, pkgdata.ErrInvalidConfig)
}

func TestFindPackageData_EmbeddedTree(t *testing.T) {
	s := NewScannerWithFS(filesystem.NewEmbedFileSystem(testdataFS, "testdata/tree"), nil)

	m, err := s.FindPackageData(".", pkgdata.DefaultScanOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg"}, m.Packages())
	assert.Equal(t, []string{"data.txt", "sub/more.dat"}, m.Files("pkg"))
}

func TestFindPackageData_BillyFilesystem(t *testing.T) {
	mem := memfs.New()
	for _, name := range []string{"/src/a.py", "/src/pkg/__init__.py", "/src/pkg/data.txt", "/src/pkg/sub/more.dat", "/src/notpkg/x.dat"} {
		require.NoError(t, util.WriteFile(mem, name, []byte("x"), 0644))
	}

	s := NewScannerWithFS(filesystem.NewBillyFileSystem(mem), nil)

	m, err := s.FindPackageData("/src", pkgdata.DefaultScanOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"data.txt", "sub/more.dat"}, m.Files("pkg"))
}

func TestFindPackageData_OSFilesystem(t *testing.T) {
	root := t.TempDir()
	for name, content := range map[string]string{
		"a.py":             "",
		"pkg/__init__.py":  "",
		"pkg/data.txt":     "data",
		"pkg/sub/more.dat": "more",
		"notpkg/x.dat":     "x",
	} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}

	m, err := NewScanner().FindPackageData(root, pkgdata.DefaultScanOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg"}, m.Packages())
	assert.Equal(t, []string{"data.txt", "sub/more.dat"}, m.Files("pkg"))
}

func TestFindPackages(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("app/__init__.py", "")
	mfs.AddFile("app/core/__init__.py", "")
	mfs.AddFile("app/tests/__init__.py", "")
	mfs.AddFile("app/plain/hidden/__init__.py", "")
	mfs.AddFile("lib/__init__.py", "")
	mfs.AddFile("lib/utils/__init__.py", "")
	mfs.AddFile("has.dot/__init__.py", "")
	mfs.AddFile("scripts/run.sh", "")

	pkgs, err := s.FindPackages("/project", pkgdata.DefaultPackageOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "lib", "app.core", "app.tests", "lib.utils"}, pkgs)

	opts := pkgdata.DefaultPackageOptions()
	opts.Exclude = []string{"*.TESTS", "lib"}
	pkgs, err = s.FindPackages("/project", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "app.core", "lib.utils"}, pkgs)
}

func TestFindPackages_AlwaysDropsEzSetup(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("app/__init__.py", "")
	mfs.AddFile("ez_setup/__init__.py", "")
	mfs.AddFile("ez_setup/inner/__init__.py", "")

	pkgs, err := s.FindPackages("/project", pkgdata.DefaultPackageOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "ez_setup.inner"}, pkgs)
}

func TestFindPackages_InvalidMarker(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("app/__init__.py", "")

	_, err := s.FindPackages("/project", pkgdata.PackageOptions{Marker: "app/__init__.py"})
	assert.ErrorIs(t, err, pkgdata.ErrInvalidConfig)
}

func TestFindPackages_Errors(t *testing.T) {
	s, mfs, _ := newTestScanner()
	mfs.AddFile("app/__init__.py", "")

	opts := pkgdata.PackageOptions{Exclude: []string{""}}
	_, err := s.FindPackages("/project", opts)
	assert.ErrorIs(t, err, pkgdata.ErrInvalidPattern)

	mfs.FailOn("app", fs.ErrPermission)
	_, err = s.FindPackages("/project", pkgdata.PackageOptions{})
	assert.ErrorIs(t, err, pkgdata.ErrScanFailed)
}
