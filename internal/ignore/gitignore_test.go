package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGitignore(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func canonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestLoad_NoIgnoreFile(t *testing.T) {
	m, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoad_IgnoreFileIsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, FileName), 0755))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestMatcher_Ignore(t *testing.T) {
	root := canonicalTempDir(t)
	writeGitignore(t, root, "*.log\nbuild/\n!keep.log\n")

	m, err := Load(root)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, filepath.Join(root, FileName), m.Source())

	tests := []struct {
		name  string
		path  string
		isDir bool
		want  bool
	}{
		{"log file", filepath.Join(root, "debug.log"), false, true},
		{"nested log file", filepath.Join(root, "sub", "trace.log"), false, true},
		{"negated file", filepath.Join(root, "keep.log"), false, false},
		{"build dir", filepath.Join(root, "build"), true, true},
		{"plain file", filepath.Join(root, "main.go"), false, false},
		{"root itself", root, true, false},
		{"outside root", filepath.Join(filepath.Dir(root), "other.log"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Ignore(tt.path, tt.isDir))
		})
	}
}

func TestMatcher_NilIsSafe(t *testing.T) {
	var m *Matcher
	assert.False(t, m.Ignore("/anything", false))
}
