package configutil

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ReadConfig reads a json5 configuration file, `name` must carry its extension.
// <name>.local.<ext> is merged over <name>.<ext> when it exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	allNotFound := true

	ext := filepath.Ext(name)
	localPath := fmt.Sprintf("%s.local%s", strings.TrimSuffix(name, ext), ext)

	defaultFile, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if err == nil {
		err = unmarshal(name, defaultFile, &out)
		if err != nil {
			return out, err
		}
		allNotFound = false
	}

	localFile, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if err == nil {
		var override T
		err = unmarshal(localPath, localFile, &override)
		if err != nil {
			return out, err
		}
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
		allNotFound = false
	}

	if allNotFound {
		return out, os.ErrNotExist
	}
	return out, nil
}

// unmarshal leaves `out` untouched when the file is blank.
func unmarshal(path string, contents []byte, out any) error {
	if len(bytes.TrimSpace(contents)) == 0 {
		return nil
	}
	err := json5.Unmarshal(contents, out)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ReadRecursively is ReadConfig but it walks up from the cwd to the filesystem root until a
// configuration file matching the name is found.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	current, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return defaultOut, err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return defaultOut, os.ErrNotExist
		}
		current = parent
	}
}
