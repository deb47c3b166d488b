package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, "", Resolve("", "/srv"))
	assert.Equal(t, "/etc/orgchart.yaml", Resolve("/etc/orgchart.yaml", "/srv", "conf"))
	assert.Equal(t, filepath.Join("/srv", "conf", "missing.yaml"), Resolve("missing.yaml", "/srv", "conf"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP__PORT=3000\n"), 0o600))
	t.Chdir(dir)
	got := Resolve(".env", "/srv")
	resolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestExists(t *testing.T) {
	ok, err := Exists(t.TempDir())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.False(t, ok)
}
