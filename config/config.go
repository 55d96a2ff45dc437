// Package config loads process environment overrides from a .env file.
package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/hsdfat8/kitcheck/internal/observability"
)

// LoadEnv reads .env (or the given files) into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnv(files ...string) {
	err := godotenv.Load(files...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	observability.Log.Warnw("Error loading .env", "files", files, "error", err)
}
