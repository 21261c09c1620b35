package util

import (
	"os"
	"path/filepath"
)

// CountFiles returns the number of non-directory entries under path,
// descending into every subdirectory.
func CountFiles(path string) (count int, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = ErrExpectedDirectory
		return
	}
	var files []os.DirEntry
	files, err = os.ReadDir(path)
	if err != nil {
		return
	}
	for _, f := range files {
		if !f.IsDir() {
			count++
			continue
		}
		var c int
		c, err = CountFiles(filepath.Join(path, f.Name()))
		count += c
		if err != nil {
			return
		}
	}
	return
}
