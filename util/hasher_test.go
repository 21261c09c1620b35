package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileHash(t *testing.T) {
	tmpDir := t.TempDir()

	emptyFile := filepath.Join(tmpDir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyFile, []byte{}, 0o644))

	helloFile := filepath.Join(tmpDir, "hello.txt")
	require.NoError(t, os.WriteFile(helloFile, []byte("hello world"), 0o644))

	subDir := filepath.Join(tmpDir, "subdir")
	require.NoError(t, os.Mkdir(subDir, 0o755))

	tests := []struct {
		name     string
		path     string
		wantHash string
		wantErr  error
	}{
		{
			name:     "empty file",
			path:     emptyFile,
			wantHash: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "hello world file",
			path:     helloFile,
			wantHash: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:    "directory returns error",
			path:    subDir,
			wantErr: ErrExpectedFile,
		},
		{
			name:    "non-existent file",
			path:    filepath.Join(tmpDir, "nonexistent.txt"),
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetFileHash(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHash, gotHash)
		})
	}
}

func TestGetHash(t *testing.T) {
	hash, err := GetHash(strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", hash)

	large := bytes.Repeat([]byte("x"), 1<<20)
	h1, err := GetHash(bytes.NewReader(large))
	require.NoError(t, err)
	h2, err := GetHash(bytes.NewReader(large))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestSameContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("different"), 0o644))

	same, err := SameContent(a, b)
	require.NoError(t, err)
	assert.True(t, same)

	same, err = SameContent(a, c)
	require.NoError(t, err)
	assert.False(t, same)

	_, err = SameContent(a, filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBucket(t *testing.T) {
	for _, name := range []string{"a", "b", "some-file.log", "2024/01/02"} {
		b := Bucket(name, 7)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 7)
		assert.Equal(t, b, Bucket(name, 7), "bucket must be stable for %q", name)
	}
	assert.Equal(t, 0, Bucket("anything", 1))
	assert.Equal(t, 0, Bucket("anything", 0))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"groups": 2}))
	assert.JSONEq(t, `{"groups": 2}`, buf.String())
}
