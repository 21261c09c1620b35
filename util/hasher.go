package util

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/taigrr/colorhash"
)

// Bucket maps name onto one of n buckets. The same name always lands in
// the same bucket. n below one is treated as a single bucket.
func Bucket(name string, n int) int {
	if n <= 1 {
		return 0
	}
	b := colorhash.HashString(name) % n
	if b < 0 {
		b = -b
	}
	return b
}

// SameContent reports whether the files at a and b hash identically.
func SameContent(a, b string) (bool, error) {
	ha, err := GetFileHash(a)
	if err != nil {
		return false, err
	}
	hb, err := GetFileHash(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Hashes a file and returns the hash as a hex string
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
