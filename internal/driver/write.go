package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"sniff/internal/source"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// restoreEncoding undoes the normalisation applied by FileSet.Load.
func restoreEncoding(text string, flags source.FileFlags) []byte {
	data := []byte(text)
	if flags&source.FileNormalizedCRLF != 0 {
		data = bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n"))
	}
	if flags&source.FileHadBOM != 0 {
		data = append(append([]byte{}, utf8BOM...), data...)
	}
	return data
}

// writeBack atomically replaces path, keeping its permissions.
func writeBack(path string, flags source.FileFlags, text string) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".sniff-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if _, err := f.Write(restoreEncoding(text, flags)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
