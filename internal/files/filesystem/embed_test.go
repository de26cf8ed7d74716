package filesystem

import (
	"embed"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// normalizeLineEndings converts Windows CRLF to Unix LF for cross-platform testing
func normalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

//go:embed all:testdata
var testdataFS embed.FS

func TestEmbedFileSystem_ReadDir(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	tests := []struct {
		name      string
		path      string
		want      []string
		expectErr bool
	}{
		{name: "root directory", path: ".", want: []string{"_marker.txt", "hello.txt", "subdir"}},
		{name: "empty path (same as root)", path: "", want: []string{"_marker.txt", "hello.txt", "subdir"}},
		{name: "subdirectory", path: "subdir", want: []string{"nested.txt"}},
		{name: "absolute path inside embed", path: "/testdata/subdir", want: []string{"nested.txt"}},
		{name: "nonexistent directory", path: "missing", expectErr: true},
		{name: "file instead of directory", path: "hello.txt", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infos, err := efs.ReadDir(tt.path)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, names(infos))
		})
	}
}

func TestEmbedFileSystem_ReadFile(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	content, err := efs.ReadFile("subdir/nested.txt")
	require.NoError(t, err)
	require.Equal(t, "nested\n", normalizeLineEndings(string(content)))

	_, err = efs.ReadFile("missing.txt")
	require.Error(t, err)
}

func TestEmbedFileSystem_Stat(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	info, err := efs.Stat("subdir")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	require.True(t, IsRegularFile(efs, "_marker.txt"))
	require.False(t, IsRegularFile(efs, "subdir"))
}
