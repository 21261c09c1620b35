package walk

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates every path under root; names ending in "/" are
// directories, everything else is an empty file.
func buildTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0o644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	slices.Sort(out)
	return out
}

func TestFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir,
		"test1.txt",
		"test2.txt",
		"test3.dat",
		"subdir/test4.txt",
		"upper.TXT",
	)

	files := slices.Collect(Files(dir, "txt"))

	assert.Equal(t, []string{"subdir/test4.txt", "test1.txt", "test2.txt"}, relPaths(t, dir, files))
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), "expected absolute path, got %s", f)
	}
}

func TestFilesPrunesExcludedSubtrees(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir,
		"keep.rs",
		"src/lib.rs",
		".git/hooks/pre-commit.rs",
		"target/debug/build.rs",
		".hidden/inner.rs",
		"src/.cache/cached.rs",
		".dotfile.rs",
		".tmp-write.rs",
		".tmpdir/staged.rs",
		"nested/target/deep.rs",
	)

	files := slices.Collect(Files(dir, "rs"))

	assert.Equal(t, []string{
		".tmp-write.rs",
		".tmpdir/staged.rs",
		"keep.rs",
		"src/lib.rs",
	}, relPaths(t, dir, files))
}

func TestFilesWildcard(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir,
		"a.log",
		"README",
		"sub/b.meta",
		"empty/",
	)

	files := slices.Collect(Files(dir, Wildcard))

	assert.Equal(t, []string{"README", "a.log", "sub/b.meta"}, relPaths(t, dir, files))
}

func TestFilesFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	buildTree(t, outside, "linked/remote.txt")
	buildTree(t, dir, "local.txt")

	if err := os.Symlink(filepath.Join(outside, "linked"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files := slices.Collect(Files(dir, "txt"))

	assert.Equal(t, []string{"link/remote.txt", "local.txt"}, relPaths(t, dir, files))
}

func TestFilesSkipsBrokenLinksAndLoops(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "sub/file.txt")

	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "sub", "loop")))

	files := slices.Collect(Files(dir, "txt"))

	assert.Equal(t, []string{"sub/file.txt"}, relPaths(t, dir, files))
}

func TestFilesMissingRoot(t *testing.T) {
	files := slices.Collect(Files(filepath.Join(t.TempDir(), "nonexistent"), Wildcard))
	assert.Empty(t, files)
}

func TestFilesRootNamedByCaller(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "target/a.txt", "target/.hidden/b.txt", ".cache/c.txt")

	t.Chdir(filepath.Join(dir, "target"))
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relPaths(t, cwd, slices.Collect(Files(".", "txt"))))

	t.Chdir(filepath.Join(dir, ".cache"))
	cwd, err = os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{"c.txt"}, relPaths(t, cwd, slices.Collect(Files(".", "txt"))))

	assert.Empty(t, slices.Collect(Files(filepath.Join(dir, "target"), "txt")))
	assert.Empty(t, slices.Collect(Files(filepath.Join(dir, ".cache"), "txt")))
}

func TestFilesStopsEarly(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "a.txt", "b.txt", "c.txt")

	var seen int
	for range Files(dir, "txt") {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestEntries(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "a/b/c.txt", "d.txt")

	var got []Entry
	for e := range Entries(dir) {
		got = append(got, e)
	}

	require.Len(t, got, 5)
	assert.Equal(t, 0, got[0].Depth)
	assert.True(t, got[0].IsDir())
	assert.Equal(t, ".", got[0].Rel)

	// pre-order, lexical within a directory
	var rels []string
	for _, e := range got {
		rels = append(rels, filepath.ToSlash(e.Rel))
	}
	assert.Equal(t, []string{".", "a", "a/b", "a/b/c.txt", "d.txt"}, rels)
	assert.Equal(t, 3, got[3].Depth)
	assert.True(t, got[3].IsRegular())
	assert.Equal(t, "c.txt", got[3].Name())
}

func TestEntriesWithExclude(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "part_0/copied.log", "src/a.log")

	files := slices.Collect(Files(dir, "log", WithExclude(filepath.Join(dir, "part_0"))))

	assert.Equal(t, []string{"src/a.log"}, relPaths(t, dir, files))
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path     string
		ext      string
		expected bool
	}{
		{"document.pdf", "pdf", true},
		{"document", "pdf", false},
		{"archive.tar.gz", "gz", true},
		{"archive.tar.gz", "tar", false},
		{"IMAGE.PNG", "png", false},
		{"anything", Wildcard, true},
		{"dir/file.rs", "rs", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MatchExtension(tt.path, tt.ext), "MatchExtension(%q, %q)", tt.path, tt.ext)
	}
}
