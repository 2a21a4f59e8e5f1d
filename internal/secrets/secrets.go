// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets finds the provider credential. It looks, in order, at the
// value given explicitly (flag or config file), the process environment, a
// .env file, and a directory of plain-text key files where the filename is
// the key name and the trimmed contents are the value.
//
// Supported key file: gemini-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// GeminiKeyFile is the key file name read from the secrets directory.
const GeminiKeyFile = "gemini-api-key"

// Default locations, relative to the working directory.
const (
	DefaultDir     = ".secrets"
	DefaultEnvFile = ".env"
)

// EnvVars are the environment variables consulted for the credential, in
// order of preference.
var EnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped. logger may be nil.
func Load(dir string, logger *zap.Logger) (map[string]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// Resolver locates the API key. The zero value uses the defaults and the
// real process environment.
type Resolver struct {
	Dir       string
	EnvFile   string
	LookupEnv func(string) (string, bool)
	Logger    *zap.Logger
}

// APIKey returns the first credential found and a description of where it
// came from. explicit is the flag or config value and wins when non-blank.
// An empty key with a nil error means nothing was configured.
func (r Resolver) APIKey(explicit string) (key, source string, err error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, "config", nil
	}

	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, name := range EnvVars {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), "env " + name, nil
		}
	}

	envFile := r.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return "", "", err
	}
	for _, name := range EnvVars {
		if v := strings.TrimSpace(dotenv[name]); v != "" {
			return v, envFile + " " + name, nil
		}
	}

	dir := r.Dir
	if dir == "" {
		dir = DefaultDir
	}
	files, err := Load(dir, r.Logger)
	if err != nil {
		return "", "", err
	}
	if v := files[GeminiKeyFile]; v != "" {
		return v, filepath.Join(dir, GeminiKeyFile), nil
	}
	return "", "", nil
}

// readEnvFile parses a .env file without touching the process environment.
// A missing file yields an empty map.
func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}
