package lightcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory afterwards (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func TestSanitizeNamespace_Valid(t *testing.T) {
	cases := map[string]string{
		"test":      "test",
		"test-file": "test-file",
		"test_file": "test_file",
	}
	for in, want := range cases {
		got, ok := sanitizeNamespace(in)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestSanitizeNamespace_StripsPathComponents(t *testing.T) {
	cases := map[string]string{
		"../test":               "test",
		"/etc/passwd":           "passwd",
		"../../etc/passwd":      "passwd",
		"folder/subfolder/file": "file",
	}
	for in, want := range cases {
		got, ok := sanitizeNamespace(in)
		assert.True(t, ok)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestSanitizeNamespace_StripsSpecialChars(t *testing.T) {
	cases := map[string]string{
		"test!@#$%^&*()":    "test",
		"hello world":       "helloworld",
		"file.txt":          "filetxt",
		"$pecial.file.name": "pecialfilename",
		"MiXeDCase":         "mixedcase",
	}
	for in, want := range cases {
		got, ok := sanitizeNamespace(in)
		assert.True(t, ok)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestSanitizeNamespace_EmptyOrInvalid(t *testing.T) {
	for _, in := range []string{"", "...", "   ", "#@!"} {
		got, ok := sanitizeNamespace(in)
		assert.False(t, ok, "input %q", in)
		assert.Equal(t, DefaultNamespace, got)
	}
}

func TestSanitizeDirectory_TrivialMarkers(t *testing.T) {
	for _, in := range []string{"", "."} {
		got, ok := sanitizeDirectory(in)
		assert.True(t, ok)
		assert.Equal(t, ".", got)
	}
}

func TestSanitizeDirectory_Valid(t *testing.T) {
	chdir(t, t.TempDir())

	got, ok := sanitizeDirectory("test_dir")
	assert.True(t, ok)
	assert.Equal(t, "test_dir", got)

	got, ok = sanitizeDirectory("./test_dir")
	assert.True(t, ok)
	assert.Equal(t, "test_dir", got)

	sub := filepath.Join("test_dir", "subdir")
	got, ok = sanitizeDirectory(sub)
	assert.True(t, ok)
	assert.Equal(t, sub, got)
}

func TestSanitizeDirectory_TraversalRejected(t *testing.T) {
	chdir(t, t.TempDir())

	for _, in := range []string{
		"../outside",
		"../../outside",
		"test_dir/../../outside",
		"/etc",
	} {
		got, ok := sanitizeDirectory(in)
		assert.False(t, ok, "input %q", in)
		assert.Equal(t, DefaultDirectory, got)
	}
}

func TestSanitizeDirectory_AbsolutePathInsideCwd(t *testing.T) {
	chdir(t, t.TempDir())

	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, ok := sanitizeDirectory(filepath.Join(cwd, "test_dir"))
	assert.True(t, ok)
	assert.Equal(t, "test_dir", got)
}

func TestSanitizeDirectory_CwdItselfBecomesDefault(t *testing.T) {
	chdir(t, t.TempDir())

	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, ok := sanitizeDirectory(cwd)
	assert.True(t, ok)
	assert.Equal(t, DefaultDirectory, got)
}

func TestSanitizeDirectory_SymlinkEscapeRejected(t *testing.T) {
	outside := t.TempDir()
	chdir(t, t.TempDir())

	// A link inside the working tree pointing out of it must not pass.
	require.NoError(t, os.Symlink(outside, "sneaky"))

	got, ok := sanitizeDirectory("sneaky")
	assert.False(t, ok)
	assert.Equal(t, DefaultDirectory, got)
}
