package utils

import (
	"os"
	"path/filepath"
)

// ReadyDir ...
func ReadyDir(filename string) error {
	dir := filepath.Dir(filename)
	return os.MkdirAll(dir, os.FileMode(0755))
}

// SaveFile ...
func SaveFile(filename string, data []byte) error {
	if err := ReadyDir(filename); err != nil {
		return err
	}
	return os.WriteFile(filename, data, os.FileMode(0644))
}

// IsDir ...
func IsDir(fpath string) bool {
	fi, err := os.Stat(fpath)
	return err == nil && fi.Mode().IsDir()
}

// IsRegular ...
func IsRegular(fpath string) bool {
	fi, err := os.Stat(fpath)
	return err == nil && fi.Mode().IsRegular()
}
