// Package config reads and writes the per-repository defaults document.
// The core consumes these values when a command supplies no explicit
// author, message, or description; it never prompts for them.
package config

import (
	"fmt"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	KeyAuthor             = "default_author"
	KeyVersionDescription = "default_version_description"
	KeyCommitMessage      = "default_commit_message"
)

const (
	FallbackAuthor             = "Unknown"
	FallbackVersionDescription = "No description provided"
	FallbackCommitMessage      = "No commit message provided"
)

// Config wraps a dedicated viper instance bound to one repository's
// config.json. A missing document yields the fallback defaults.
type Config struct {
	v    *viper.Viper
	path string
}

// Load binds a Config to the document at path. The document may be
// absent; defaults cover every key.
func Load(fsys afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault(KeyAuthor, FallbackAuthor)
	v.SetDefault(KeyVersionDescription, FallbackVersionDescription)
	v.SetDefault(KeyCommitMessage, FallbackCommitMessage)

	if err := v.ReadInConfig(); err != nil {
		if ok, _ := afero.Exists(fsys, path); ok {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return &Config{v: v, path: path}, nil
}

// DefaultAuthor returns the configured default author.
func (c *Config) DefaultAuthor() string {
	return c.v.GetString(KeyAuthor)
}

// DefaultVersionDescription returns the configured default version
// description.
func (c *Config) DefaultVersionDescription() string {
	return c.v.GetString(KeyVersionDescription)
}

// DefaultCommitMessage returns the configured default commit message.
func (c *Config) DefaultCommitMessage() string {
	return c.v.GetString(KeyCommitMessage)
}

// Keys lists the settable config keys.
func Keys() []string {
	return []string{KeyAuthor, KeyVersionDescription, KeyCommitMessage}
}

// Set updates one key and rewrites the document. Unknown keys are
// rejected.
func (c *Config) Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (valid: %v)", key, Keys())
	}
	c.v.Set(key, value)
	return c.Save()
}

// Save rewrites the config document with the current values.
func (c *Config) Save() error {
	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// All returns every key with its effective value, for config show.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(Keys()))
	for _, k := range Keys() {
		out[k] = c.v.GetString(k)
	}
	return out
}
