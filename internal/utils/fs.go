package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

func IsWritableDir(path string) (err error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return err
	}

	if !fi.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	f, err := os.CreateTemp(path, ".tmp*")
	if err != nil {
		return fmt.Errorf("path is not writable: %s", path)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(f.Name())
}

// Expand resolves `~` and makes the path absolute.
func Expand(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}
