// Package config resolves the settings of a dwlg run. Flags win over
// environment variables, which may be loaded from a .env file, and those
// win over the built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gaurav-prasanna/dwlg/core/extract"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvRawDir    = "DWLG_RAW_DIR"
	EnvSplitsDir = "DWLG_SPLITS_DIR"
	EnvPolicy    = "DWLG_POLICY"
	EnvLogMode   = "DWLG_LOG_MODE"

	DefaultRawDir    = "data/raw"
	DefaultSplitsDir = "data/splits"
)

// LoadEnv reads .env from the working directory if there is one. Variables
// already set in the environment are not overridden.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Getenv returns the value of key, or fallback when it is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadPolicy returns the default extraction policy overridden by the YAML
// file at path. An empty path yields the defaults. Keys missing from the
// file keep their default value.
func LoadPolicy(path string) (extract.Policy, error) {
	policy := extract.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("reading policy: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&policy); err != nil && !errors.Is(err, io.EOF) {
		return policy, fmt.Errorf("parsing policy %s: %w", path, err)
	}
	return policy, nil
}
