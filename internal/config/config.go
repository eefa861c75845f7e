// Package config provides YAML-based interpreter settings with embedded
// defaults.
package config

import (
	"os"
	"path/filepath"
)

// Config is the full settings file.
type Config struct {
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Paths       PathsConfig       `yaml:"paths"`
}

// InterpreterConfig tunes engine behavior.
type InterpreterConfig struct {
	Prompt     string `yaml:"prompt"`
	Wizard     bool   `yaml:"wizard"`
	WordLength int    `yaml:"word_length"` // 0 = use the game file header
	Seed       int64  `yaml:"seed"`        // 0 = time-based
}

// PathsConfig locates persistent files. Leading ~ expands to the home
// directory at use time.
type PathsConfig struct {
	DB      string `yaml:"db"`
	SaveDir string `yaml:"save_dir"`
}

// ExpandHome replaces a leading ~ with the user's home directory. The
// path comes back unchanged when the home directory is unknown.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Default returns the hardcoded fallback configuration.
func Default() Config {
	return Config{
		Interpreter: InterpreterConfig{
			Prompt: "Tell me what to do",
		},
		Paths: PathsConfig{
			DB:      "~/.advent/sessions.db",
			SaveDir: "~/.advent/saves",
		},
	}
}
