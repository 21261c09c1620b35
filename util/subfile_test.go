package util

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountFiles(t *testing.T) {
	testCases := []struct {
		Name          string
		FilesToCreate int
	}{
		{Name: "no files", FilesToCreate: 0},
		{Name: "flat files only", FilesToCreate: 5},
		{Name: "one subdirectory", FilesToCreate: 15},
		{Name: "many subdirectories", FilesToCreate: 1000},
	}
	for _, c := range testCases {
		t.Run(c.Name, func(t *testing.T) {
			dir := t.TempDir()
			path := dir
			for i := 0; i < c.FilesToCreate/10; i++ {
				path = filepath.Join(path, fmt.Sprintf("%d", i))
				require.NoError(t, os.Mkdir(path, 0o755))
				for w := 0; w < 10; w++ {
					require.NoError(t, os.WriteFile(filepath.Join(path, fmt.Sprintf("%d.file", w)), nil, 0o644))
				}
			}
			for i := 0; i < c.FilesToCreate%10; i++ {
				require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("%d.file", i)), nil, 0o644))
			}

			count, err := CountFiles(dir)
			require.NoError(t, err)
			assert.Equal(t, c.FilesToCreate, count)
		})
	}

	t.Run("nonexistent path", func(t *testing.T) {
		_, err := CountFiles(filepath.Join(t.TempDir(), "nonexistent"))
		assert.True(t, os.IsNotExist(err), "expected not-exist error, got %v", err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		_, err := CountFiles(path)
		assert.ErrorIs(t, err, ErrExpectedDirectory)
	})
}
