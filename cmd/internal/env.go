package internal

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given files, or ".env" if none are given.
// Missing files are skipped, and variables already set in the environment are never overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Env returns the named environment variable, or def if it's unset or empty.
func Env(name, def string) string {
	if val, ok := os.LookupEnv(name); ok && val != "" {
		return val
	}
	return def
}
