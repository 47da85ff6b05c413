// Package config provides configuration structures and loading for po2json.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the config file in the repository root.
	FileName = "po2json.yaml"
	// UserFileName is the name of the config file in the home directory.
	UserFileName = ".po2json.yaml"

	DefaultPoDir      = "po"
	DefaultLocalesDir = "_locales"
	DefaultOutputName = "messages.json"
	DefaultJobs       = 4
)

// Config holds the po2json configuration. Pointer fields are nil when not
// set, so that later files only override what they mention.
type Config struct {
	PoDir            string `yaml:"po_dir,omitempty"`
	LocalesDir       string `yaml:"locales_dir,omitempty"`
	OutputName       string `yaml:"output_name,omitempty"`
	Minify           *bool  `yaml:"minify,omitempty"`
	ExpandForDisplay *bool  `yaml:"expand_for_display,omitempty"`
	FlagUnreviewed   *bool  `yaml:"flag_unreviewed,omitempty"`
	Jobs             *int   `yaml:"jobs,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PoDir:            DefaultPoDir,
		LocalesDir:       DefaultLocalesDir,
		OutputName:       DefaultOutputName,
		Minify:           boolPtr(false),
		ExpandForDisplay: boolPtr(false),
		FlagUnreviewed:   boolPtr(false),
		Jobs:             intPtr(DefaultJobs),
	}
}

// Merge copies every field set in other into c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.PoDir != "" {
		c.PoDir = other.PoDir
	}
	if other.LocalesDir != "" {
		c.LocalesDir = other.LocalesDir
	}
	if other.OutputName != "" {
		c.OutputName = other.OutputName
	}
	if other.Minify != nil {
		c.Minify = boolPtr(*other.Minify)
	}
	if other.ExpandForDisplay != nil {
		c.ExpandForDisplay = boolPtr(*other.ExpandForDisplay)
	}
	if other.FlagUnreviewed != nil {
		c.FlagUnreviewed = boolPtr(*other.FlagUnreviewed)
	}
	if other.Jobs != nil {
		c.Jobs = intPtr(*other.Jobs)
	}
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	if c.Jobs != nil && *c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", *c.Jobs)
	}
	if c.OutputName != "" && filepath.Base(c.OutputName) != c.OutputName {
		return fmt.Errorf("output_name must be a file name, got %q", c.OutputName)
	}
	return nil
}

// loadConfigFromFile reads one YAML config file.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// loadOptionalFile is like loadConfigFromFile, but a missing file is not
// an error.
func loadOptionalFile(path string) (*Config, error) {
	cfg, err := loadConfigFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("config file %s not found, skipped", path)
		return nil, nil
	}
	return cfg, err
}

// LoadConfig returns the defaults overridden by ~/.po2json.yaml and then by
// <workDir>/po2json.yaml. If configFile is given, only that file is read
// and it must exist.
func LoadConfig(configFile, workDir string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		c, err := loadConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg.Merge(c)
		return cfg, nil
	}

	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, UserFileName))
	}
	if workDir != "" {
		paths = append(paths, filepath.Join(workDir, FileName))
	}
	for _, path := range paths {
		c, err := loadOptionalFile(path)
		if err != nil {
			return nil, err
		}
		if c != nil {
			log.Debugf("loaded config file %s", path)
		}
		cfg.Merge(c)
	}
	return cfg, nil
}

// LoadEnv loads environment variables from .env files, the one in the
// current directory by default. Missing files are ignored.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Debugf("no .env file loaded: %s", err)
	}
}

// Dump returns cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(n int) *int {
	return &n
}
