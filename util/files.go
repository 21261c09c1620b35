package util

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dendrascience/dirsplit/walk"
)

// ReadFileContent returns the whole file as a string.
func ReadFileContent(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadLines returns every line of the file with surrounding whitespace
// trimmed.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	return lines, scanner.Err()
}

// HasMultipleLines reports whether the file contains more than one line.
func HasMultipleLines(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lines := 0
	for scanner.Scan() {
		lines++
		if lines > 1 {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// ContainsText reports whether the file content contains text.
func ContainsText(path, text string) (bool, error) {
	content, err := ReadFileContent(path)
	if err != nil {
		return false, err
	}
	return strings.Contains(content, text), nil
}

// WriteToFile replaces the file at path with content. The data is written
// to a ".tmp-" file in the same directory and renamed over the target, so
// the parent directory must already exist.
func WriteToFile(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}

// CopyFile copies src to dst, truncating dst if it exists. The permission
// bits of src are carried over.
func CopyFile(src, dst string) error {
	stat, err := os.Stat(src)
	if err != nil {
		return err
	}
	if stat.IsDir() {
		return ErrExpectedFile
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, stat.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, stat.Mode().Perm())
}

// HasExtension reports whether path ends in the extension ext, given with
// or without the leading dot. The comparison is case-insensitive.
func HasExtension(path, ext string) bool {
	want := "." + strings.TrimPrefix(ext, ".")
	return len(want) > 1 && strings.EqualFold(filepath.Ext(path), want)
}

// FilesWithExtension lists the regular files under dir with extension ext,
// using the filtered walker so hidden, .git and target trees are skipped.
func FilesWithExtension(dir, ext string) []string {
	ext = strings.TrimPrefix(ext, ".")
	var files []string
	for path := range walk.Files(dir, ext) {
		files = append(files, path)
	}
	return files
}

// DeleteFilesWithExtension removes every regular file under dir whose
// extension equals ext, ignoring case. Entries that cannot be read are
// skipped. Removals run concurrently; all of them are attempted and the
// first failure is returned along with the number of files removed.
func DeleteFilesWithExtension(ctx context.Context, dir, ext string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var g errgroup.Group
	var removed atomic.Int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("skipping entry", "path", path, "error", err)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() || !HasExtension(path, ext) {
			return nil
		}
		g.Go(func() error {
			if err := os.Remove(path); err != nil {
				logger.Warn("failed to remove file", "path", path, "error", err)
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
			logger.Debug("removed file", "path", path)
			removed.Add(1)
			return nil
		})
		return nil
	})
	if werr := g.Wait(); werr != nil {
		return int(removed.Load()), werr
	}
	return int(removed.Load()), err
}
