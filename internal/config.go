package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBase is the backend address used when nothing else is configured.
const DefaultAPIBase = "http://127.0.0.1:5000"

// Config holds runtime settings for the client.
type Config struct {
	APIBase   string        `yaml:"api_base" validate:"required,url"`
	DataDir   string        `yaml:"data_dir" validate:"required"`
	Store     string        `yaml:"store"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	Env       string        `yaml:"env" validate:"oneof=development production"`
	LogFormat string        `yaml:"log_format" validate:"oneof=text json"`
	Layout    string        `yaml:"layout" validate:"oneof=classic studio"`
}

// ConfigOverrides are values given on the command line; empty fields are ignored.
type ConfigOverrides struct {
	APIBase string
	DataDir string
	Store   string
	Layout  string
}

var validate = validator.New()

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	dataDir := ".notelooms"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".notelooms")
	}
	return &Config{
		APIBase:   DefaultAPIBase,
		DataDir:   dataDir,
		Timeout:   2 * time.Minute,
		Env:       "production",
		LogFormat: "text",
		Layout:    "classic",
	}
}

// DefaultConfigPath returns config.yaml inside dataDir. An empty dataDir falls
// back to NOTELOOMS_DATA_DIR and then ~/.notelooms.
func DefaultConfigPath(dataDir string) string {
	if dataDir == "" {
		dataDir = os.Getenv("NOTELOOMS_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = DefaultConfig().DataDir
	}
	return filepath.Join(dataDir, "config.yaml")
}

// LoadConfig layers defaults, the YAML file at path, a .env file, the environment
// and finally overrides. Without a path the file is looked up in the data
// directory, where a missing file is not an error.
func LoadConfig(path string, overrides ConfigOverrides) (*Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil {
		LogDebug("No .env file loaded: %v", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath(overrides.DataDir)
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyOverrides(overrides)

	if cfg.Store == "" {
		cfg.Store = filepath.Join(cfg.DataDir, "state.db")
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := firstEnv("NOTELOOMS_API_BASE", "NOTELOOMS_BACKEND_URL"); v != "" {
		c.APIBase = v
	}
	if v := os.Getenv("NOTELOOMS_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("NOTELOOMS_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("NOTELOOMS_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("NOTELOOMS_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("NOTELOOMS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ValidationError{Message: fmt.Sprintf("NOTELOOMS_TIMEOUT: %v", err)}
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyOverrides(o ConfigOverrides) {
	if o.APIBase != "" {
		c.APIBase = o.APIBase
	}
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Store != "" {
		c.Store = o.Store
	}
	if o.Layout != "" {
		c.Layout = o.Layout
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{Message: fmt.Sprintf("invalid config: %s failed %q check", fe.Field(), fe.Tag())}
		}
		return &ValidationError{Message: fmt.Sprintf("invalid config: %v", err)}
	}
	return nil
}

// Development reports whether development diagnostics are enabled.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// PreviewDir is where preview references live.
func (c *Config) PreviewDir() string {
	return filepath.Join(c.DataDir, "previews")
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
