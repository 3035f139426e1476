package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvConfig     = "STAGEBOOKS_CONFIG"
	EnvAddr       = "STAGEBOOKS_ADDR"
	EnvLogLevel   = "STAGEBOOKS_LOG_LEVEL"
	EnvExportedBy = "STAGEBOOKS_EXPORTED_BY"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg fields from environment variables read by getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvExportedBy); v != "" {
		cfg.Business.ExportedBy = v
	}
}

// Path returns the config file to use. An explicit path wins, then
// STAGEBOOKS_CONFIG, then FileName in the working directory.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv(EnvConfig); v != "" {
		return v
	}
	return FileName
}

// Resolve loads .env, reads the config chosen by Path and applies
// environment overrides. A missing config file yields the defaults.
func Resolve(path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := Load(Path(path))
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(""), nil
	}
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}
