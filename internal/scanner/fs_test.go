package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home := "/Users/tester"

	assert.Equal(t, home, ExpandPath("~", home))
	assert.Equal(t, "/Users/tester/Library", ExpandPath("~/Library", home))
	assert.Equal(t, "/opt/data", ExpandPath("/opt/data", home))

	t.Setenv("APPHOUND_TEST_DIR", "/var/tmp")
	assert.Equal(t, "/var/tmp/cache", ExpandPath("$APPHOUND_TEST_DIR/cache", home))
}

func TestLocalFilesystemProbes(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("hello"), 0o644))
	subDir := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(subDir, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filePath, link))

	fs := LocalFilesystem{}

	assert.True(t, fs.Exists(filePath))
	assert.True(t, fs.IsFile(filePath))
	assert.False(t, fs.IsDir(filePath))
	assert.True(t, fs.IsDir(subDir))
	assert.True(t, fs.IsSymlink(link))
	assert.False(t, fs.IsSymlink(filePath))
	assert.False(t, fs.Exists(filepath.Join(dir, "missing")))

	meta, err := fs.Stat(filePath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), meta.Size)
	assert.False(t, meta.ModTime.IsZero())

	assert.True(t, fs.IsWritable(dir))
}

func TestLocalFilesystemResolveFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(target, link))

	fs := LocalFilesystem{}
	canonicalTarget := fs.Resolve(target)

	assert.Equal(t, canonicalTarget, fs.Resolve(link))
}

func TestLocalFilesystemResolveMissingTail(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(target, link))

	fs := LocalFilesystem{}

	// The tail does not exist; the symlinked ancestor must still resolve.
	resolved := fs.Resolve(filepath.Join(link, "missing", "leaf.txt"))
	expected := filepath.Join(fs.Resolve(target), "missing", "leaf.txt")
	assert.Equal(t, expected, resolved)
}

func TestMemFilesystemAliasRewrite(t *testing.T) {
	fs := NewMemFilesystem("/Users/tester")
	fs.AddDir("/Users/tester/Applications/Foo.app")
	fs.AddLink("/Applications/Foo.app", "/Users/tester/Applications/Foo.app")

	assert.Equal(t, "/Users/tester/Applications/Foo.app", fs.Resolve("/Applications/Foo.app"))
	assert.Equal(t, "/Users/tester/Applications/Foo.app/Contents", fs.Resolve("/Applications/Foo.app/Contents"))
	assert.True(t, fs.Exists("/Applications/Foo.app"))
	assert.True(t, fs.IsDir("/Applications/Foo.app"))
}

func TestMemFilesystemHomeExpansion(t *testing.T) {
	fs := NewMemFilesystem("/Users/tester")
	fs.AddFile("/Users/tester/Library/Preferences/com.foo.plist", 10)

	assert.True(t, fs.Exists("~/Library/Preferences/com.foo.plist"))
}
