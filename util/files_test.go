package util

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("Line 1\n  Line 2  \nLine 3"), 0o644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Line 1", "Line 2", "Line 3"}, lines)

	_, err = ReadLines(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello, World!"), 0o644))

	content, err := ReadFileContent(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", content)
}

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	require.NoError(t, WriteToFile(path, "Hello, World!"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(content))

	require.NoError(t, WriteToFile(path, "replaced"))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(content))

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	err = WriteToFile(filepath.Join(dir, "missing", "test.txt"), "x")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sh")
	dst := filepath.Join(dir, "dst.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\necho hi\n"), 0o755))

	require.NoError(t, CopyFile(src, dst))

	same, err := SameContent(src, dst)
	require.NoError(t, err)
	assert.True(t, same)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	assert.ErrorIs(t, CopyFile(filepath.Join(dir, "missing"), dst), os.ErrNotExist)
	assert.ErrorIs(t, CopyFile(dir, dst), ErrExpectedFile)
}

func TestContainsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("#![warn(clippy::all, clippy::pedantic)]\nfn main() {}\n"), 0o644))

	got, err := ContainsText(path, "#![warn(clippy::all, clippy::pedantic)]")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = ContainsText(path, "#![deny(unsafe_code)]")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = ContainsText(filepath.Join(t.TempDir(), "missing.rs"), "x")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHasMultipleLines(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.txt")
	multi := filepath.Join(dir, "multi.txt")
	trailing := filepath.Join(dir, "trailing.txt")
	require.NoError(t, os.WriteFile(single, []byte("Single line"), 0o644))
	require.NoError(t, os.WriteFile(multi, []byte("Line 1\nLine 2\nLine 3"), 0o644))
	require.NoError(t, os.WriteFile(trailing, []byte("Single line\n"), 0o644))

	got, err := HasMultipleLines(single)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = HasMultipleLines(multi)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = HasMultipleLines(trailing)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestDeleteFilesWithExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"test1.tmp", "test2.TMP", "test.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	sub := filepath.Join(dir, "subdir")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "test3.tmp"), nil, 0o644))

	removed, err := DeleteFilesWithExtension(context.Background(), dir, "tmp", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	count, err := CountFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.FileExists(t, filepath.Join(dir, "test.txt"))
}

func TestOpenInEditorEmpty(t *testing.T) {
	assert.NoError(t, OpenInEditor(context.Background(), nil))
}

func TestOpenInEditorMissingBinary(t *testing.T) {
	t.Setenv("EDITOR", "definitely-not-an-editor-binary")
	err := OpenInEditor(context.Background(), []string{"file.txt"})
	assert.ErrorIs(t, err, ErrNoEditor)
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want bool
	}{
		{"a/b.log", "log", true},
		{"a/b.log", ".log", true},
		{"a/b.LOG", "log", true},
		{"a/b.log.meta", "log", false},
		{"a/b", "log", false},
		{"a/b.log", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path+"_"+tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExtension(tt.path, tt.ext))
		})
	}
}

func TestFilesWithExtension(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"a.txt", "b.dat", "sub/c.txt", ".hidden/d.txt", "target/e.txt"} {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0o644))
	}

	files := FilesWithExtension(dir, ".txt")
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "c.txt"),
	}, files)
}
