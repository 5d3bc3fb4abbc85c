package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"-"`

	// Run settings
	SaveBeforeTest  bool   `yaml:"saveBeforeTest"`
	UseVendorBinary bool   `yaml:"useVendorBinary"`
	BinaryPath      string `yaml:"binaryPath"`
	UseTestFallback bool   `yaml:"useTestFallback"`
	LoginShellPath  bool   `yaml:"loginShellPath"`
	ExclusiveRuns   bool   `yaml:"exclusiveRuns"`
	RawTimeout      string `yaml:"timeout"` // e.g. "5m", empty for no limit

	// Output settings
	SuccessAsNotifications  bool   `yaml:"successAsNotifications"`
	FailuresAsNotifications bool   `yaml:"failuresAsNotifications"`
	OutputFontSize          string `yaml:"outputFontSize"`
	LogLevel                string `yaml:"logLevel"`

	Store StoreConfig `yaml:"store"`

	// Values from the project .env file merged with the process environment
	Env map[string]string `yaml:"-"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// StoreConfig selects where run records are persisted
type StoreConfig struct {
	Driver string `yaml:"driver"` // json, bolt or mysql
	Path   string `yaml:"path"`   // file path for json and bolt, empty for the XDG state dir
}

// Flags holds command-line flags
type Flags struct {
	File        string
	Line        int
	Stdin       bool
	ProjectPath string
	Verbose     bool
	NoTUI       bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:            DefaultProjectPath,
		UseVendorBinary:        true,
		BinaryPath:             DefaultBinaryPath,
		LoginShellPath:         true,
		SuccessAsNotifications: true,
		OutputFontSize:         DefaultOutputFontSize,
		LogLevel:               DefaultLogLevel,
		Store:                  StoreConfig{Driver: DefaultStoreDriver},
		Env:                    map[string]string{},
	}
}

// Load creates a config for the project at dir.
// Precedence, lowest first: defaults, .phprun.yaml, .env, process environment.
func Load(dir string) (*Config, error) {
	cfg := New()
	cfg.ProjectPath = dir

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}

	// .env file might not exist, that's okay - use environment variables
	if dotenv, err := godotenv.Read(filepath.Join(dir, EnvFileName)); err == nil {
		for k, v := range dotenv {
			cfg.Env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			cfg.Env[k] = v
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	bools := map[string]*bool{
		"SAVE_BEFORE_TEST":          &c.SaveBeforeTest,
		"USE_VENDOR_BINARY":         &c.UseVendorBinary,
		"USE_TEST_FALLBACK":         &c.UseTestFallback,
		"LOGIN_SHELL_PATH":          &c.LoginShellPath,
		"EXCLUSIVE_RUNS":            &c.ExclusiveRuns,
		"SUCCESS_AS_NOTIFICATIONS":  &c.SuccessAsNotifications,
		"FAILURES_AS_NOTIFICATIONS": &c.FailuresAsNotifications,
	}
	for name, dst := range bools {
		v, ok := c.Env[EnvPrefix+name]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}

	strs := map[string]*string{
		"BINARY_PATH":      &c.BinaryPath,
		"TIMEOUT":          &c.RawTimeout,
		"OUTPUT_FONT_SIZE": &c.OutputFontSize,
		"LOG_LEVEL":        &c.LogLevel,
		"STORE_DRIVER":     &c.Store.Driver,
		"STORE_PATH":       &c.Store.Path,
	}
	for name, dst := range strs {
		if v, ok := c.Env[EnvPrefix+name]; ok {
			*dst = v
		}
	}
	return nil
}

// Validate checks values that cannot be fixed by falling back to defaults
func (c *Config) Validate() error {
	if !slices.Contains(StoreDrivers, c.Store.Driver) {
		return fmt.Errorf("unknown store driver %q (want one of %s)", c.Store.Driver, strings.Join(StoreDrivers, ", "))
	}
	if c.RawTimeout != "" {
		if _, err := time.ParseDuration(c.RawTimeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.RawTimeout, err)
		}
	}
	if !c.UseVendorBinary && strings.TrimSpace(c.BinaryPath) == "" {
		return errors.New("binaryPath must be set when useVendorBinary is false")
	}
	return nil
}

// Timeout returns the configured run timeout, zero meaning no limit
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.RawTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Getenv returns a value from the merged .env and process environment
func (c *Config) Getenv(key, fallback string) string {
	if v, ok := c.Env[key]; ok && v != "" {
		return v
	}
	return fallback
}

// GetPHPUnitPath returns the path to the project's PHPUnit binary
func (c *Config) GetPHPUnitPath(projectDir string) string {
	return filepath.Join(projectDir, "vendor", "bin", "phpunit")
}

// GetArtisanPath returns the path to the project's artisan script
func (c *Config) GetArtisanPath(projectDir string) string {
	return filepath.Join(projectDir, "artisan")
}

// GetStorePath returns the file backing the json and bolt stores.
// Defaults to a file under the XDG state home so records survive across projects and restarts.
func (c *Config) GetStorePath() (string, error) {
	if c.Store.Path != "" {
		if filepath.IsAbs(c.Store.Path) {
			return c.Store.Path, nil
		}
		return filepath.Join(c.ProjectPath, c.Store.Path), nil
	}

	name := "state.json"
	if c.Store.Driver == "bolt" {
		name = "state.db"
	}
	p, err := xdg.StateFile(filepath.Join(StateDirName, name))
	if err != nil {
		return "", fmt.Errorf("resolve state file: %w", err)
	}
	return p, nil
}
