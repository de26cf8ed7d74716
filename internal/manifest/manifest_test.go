package manifest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

func sample() *pkgdata.Manifest {
	m := pkgdata.NewManifest()
	m.Add("pkg", "data.txt")
	m.Add("pkg", "sub/more.dat")
	m.Add("", "README.txt")
	return m
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{" text ", FormatText},
		{"txt", FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, pkgdata.ErrInvalidConfig))
}

func TestFormatForPath(t *testing.T) {
	f, err := FormatForPath("out/manifest.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatForPath("manifest.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatForPath("manifest.txt")
	assert.ErrorIs(t, err, pkgdata.ErrInvalidConfig)
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), FormatJSON, false))

	expected := `{
  "pkg": [
    "data.txt",
    "sub/more.dat"
  ],
  "": [
    "README.txt"
  ]
}
`
	assert.Equal(t, expected, buf.String())
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), FormatYAML, false))

	expected := `pkg:
    - data.txt
    - sub/more.dat
"":
    - README.txt
`
	assert.Equal(t, expected, buf.String())
}

func TestRender_Empty(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, pkgdata.NewManifest(), format, false))
		assert.Equal(t, "{}\n", buf.String(), format)
	}
}

func TestRender_TextPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), FormatText, false))

	expected := "pkg\n" +
		"  • data.txt\n" +
		"  • sub/more.dat\n" +
		"(no package)\n" +
		"  • README.txt\n" +
		"2 packages, 3 files\n"
	assert.Equal(t, expected, buf.String())
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sample(), Format("xml"), false)
	assert.ErrorIs(t, err, pkgdata.ErrInvalidConfig)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteFailure(t *testing.T) {
	err := Render(failingWriter{}, sample(), FormatJSON, false)
	assert.ErrorIs(t, err, pkgdata.ErrOutputFailed)
}

func TestLoad_RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		path   string
		format Format
	}{
		{"/project/manifest.json", FormatJSON},
		{"/project/manifest.yaml", FormatYAML},
	} {
		t.Run(string(tc.format), func(t *testing.T) {
			data, err := Marshal(sample(), tc.format, false)
			require.NoError(t, err)

			mfs := filesystem.NewMemoryFileSystem("/project")
			mfs.AddFile(tc.path, string(data))

			loaded, raw, err := Load(mfs, tc.path)
			require.NoError(t, err)
			assert.True(t, sample().Equal(loaded))
			assert.Equal(t, data, raw)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/bad.json", `["not", "a", "manifest"]`)

	_, _, err := Load(mfs, "/project/missing.json")
	assert.Error(t, err)

	_, _, err = Load(mfs, "/project/bad.json")
	assert.Error(t, err)

	_, _, err = Load(mfs, "/project/manifest.txt")
	assert.ErrorIs(t, err, pkgdata.ErrInvalidConfig)
}

func TestFingerprintAndID(t *testing.T) {
	fp1, err := Fingerprint(sample())
	require.NoError(t, err)
	fp2, err := Fingerprint(sample())
	require.NoError(t, err)
	assert.Len(t, fp1, 64)
	assert.Equal(t, fp1, fp2)

	other := sample()
	other.Add("pkg", "extra.txt")
	fp3, err := Fingerprint(other)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)

	id1, err := ID(sample())
	require.NoError(t, err)
	id2, err := ID(sample())
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Equal(t, uuid.Version(5), id1.Version())

	id3, err := ID(other)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}

func TestSameRendering(t *testing.T) {
	rendered, err := Marshal(sample(), FormatYAML, false)
	require.NoError(t, err)

	crlf := bytes.ReplaceAll(rendered, []byte("\n"), []byte("\r\n"))
	assert.True(t, SameRendering(crlf, rendered))
	assert.False(t, SameRendering([]byte("pkg: []\n"), rendered))
}
