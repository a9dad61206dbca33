package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAll(t *testing.T, fsys FileSystem, name, data string) {
	t.Helper()
	w, err := fsys.Create(name)
	require.NoError(t, err)
	_, err = io.WriteString(w, data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestOSFileSystem_CreateAndRead(t *testing.T) {
	t.Parallel()

	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "out", "run")
	require.NoError(t, fsys.MkdirAll(dir, 0o755))
	assert.True(t, fsys.Exists(dir))

	name := filepath.Join(dir, "moves.geojson")
	assert.False(t, fsys.Exists(name))
	writeAll(t, fsys, name, "{}")
	assert.True(t, fsys.Exists(name))

	data, err := fsys.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestMemoryFileSystem_CreateRequiresDir(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	_, err := m.Create("out/profile.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, m.MkdirAll("out", 0o755))
	writeAll(t, m, "out/profile.png", "png")
	writeAll(t, m, "top.html", "html")

	assert.Equal(t, []string{"out/profile.png", "top.html"}, m.Names())
	assert.True(t, m.Exists("out"))
	assert.True(t, m.Exists("./out/profile.png"))
}

func TestMemoryFileSystem_ContentsVisibleOnClose(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	w, err := m.Create("a.txt")
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello")
	require.NoError(t, err)

	data, err := m.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, w.Close())
	data, err = m.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// Returned slices are copies.
	data[0] = 'j'
	again, _ := m.ReadFile("a.txt")
	assert.Equal(t, "hello", string(again))

	_, err = m.ReadFile("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain file", "profile.png", false},
		{"nested", "layers/0001.html", false},
		{"dot segments inside", "a/../b.json", false},
		{"parent escape", "../escape.json", true},
		{"deep escape", "a/../../escape.json", true},
		{"dir itself", ".", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(dir, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestOutputPath_SymlinkEscape(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(root, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, err := OutputPath(root, "link/file.png")
	assert.Error(t, err)
}
