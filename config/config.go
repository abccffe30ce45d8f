// Package config loads and validates the server settings.
//
// Settings are resolved in layers, later layers winning:
//
//  1. built-in defaults
//  2. an optional YAML file
//  3. .env files (loaded into the process environment, never overriding
//     variables that are already set)
//  4. MANIM_* environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration indicates invalid or unloadable settings.
var ErrConfiguration = errors.New("configuration error")

// Timeout bounds, in seconds.
const (
	MinTimeout = 10
	MaxTimeout = 3600
)

// Default values.
const (
	DefaultOutputDir = "media"
	DefaultCodeDir   = "code"
	DefaultTimeout   = 300
	DefaultRenderer  = "manim"
	DefaultLogLevel  = "info"
)

// Environment variable names.
const (
	EnvOutputDir = "MANIM_OUTPUT_DIR"
	EnvCodeDir   = "MANIM_CODE_DIR"
	EnvTempDir   = "MANIM_TEMP_DIR"
	EnvTimeout   = "MANIM_TIMEOUT"
	EnvRenderer  = "MANIM_RENDERER"
	EnvLogFile   = "MANIM_LOG_FILE"
	EnvLogLevel  = "MANIM_LOG_LEVEL"
	EnvDev       = "MANIM_DEV"
)

// Settings holds the validated server configuration.
type Settings struct {
	// OutputDir is the renderer media root. Created if absent.
	OutputDir string `yaml:"output_dir"`

	// CodeDir holds generated program files. Created if absent.
	CodeDir string `yaml:"code_dir"`

	// Timeout is the renderer wall-clock limit in seconds, clamped to
	// [MinTimeout, MaxTimeout].
	Timeout int `yaml:"timeout"`

	// Renderer is the renderer executable.
	Renderer string `yaml:"renderer"`

	// LogFile enables a rotated JSON log file when set.
	LogFile string `yaml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Development switches console logging to a human-readable encoder.
	Development bool `yaml:"development"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		OutputDir: DefaultOutputDir,
		CodeDir:   DefaultCodeDir,
		Timeout:   DefaultTimeout,
		Renderer:  DefaultRenderer,
		LogLevel:  DefaultLogLevel,
	}
}

// Options selects the optional sources consulted by Load.
type Options struct {
	// ConfigFile is an optional YAML settings file. A missing file is an error.
	ConfigFile string

	// EnvFiles are .env files to load. Missing files are skipped.
	EnvFiles []string

	// Getenv reads environment variables.
	// Default: os.Getenv
	Getenv func(string) string
}

// Load resolves settings from defaults, the YAML file, .env files and the
// environment, then validates them.
func Load(opts Options) (Settings, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	s := Defaults()
	if opts.ConfigFile != "" {
		if err := s.loadYAML(opts.ConfigFile); err != nil {
			return Settings{}, err
		}
	}

	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return Settings{}, err
	}
	if err := s.applyEnv(opts.Getenv); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrConfiguration, path, err)
	}
	return nil
}

func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: loading %s: %v", ErrConfiguration, f, err)
		}
	}
	return nil
}

func (s *Settings) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvOutputDir); v != "" {
		s.OutputDir = v
	}
	if v := getenv(EnvTempDir); v != "" {
		s.CodeDir = v
	}
	if v := getenv(EnvCodeDir); v != "" {
		s.CodeDir = v
	}
	if v := getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer number of seconds, got %q",
				ErrConfiguration, EnvTimeout, v)
		}
		s.Timeout = n
	}
	if v := getenv(EnvRenderer); v != "" {
		s.Renderer = v
	}
	if v := getenv(EnvLogFile); v != "" {
		s.LogFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		s.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvDev); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean, got %q", ErrConfiguration, EnvDev, v)
		}
		s.Development = dev
	}
	return nil
}

// Validate checks required fields and clamps the timeout into range.
// Returns ErrConfiguration if any required field is missing or invalid.
func (s *Settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.OutputDir) == "" {
		missing = append(missing, "output_dir")
	}
	if strings.TrimSpace(s.CodeDir) == "" {
		missing = append(missing, "code_dir")
	}
	if strings.TrimSpace(s.Renderer) == "" {
		missing = append(missing, "renderer")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}

	switch s.LogLevel {
	case "":
		s.LogLevel = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrConfiguration, s.LogLevel)
	}

	s.Timeout = ClampTimeout(s.Timeout)
	return nil
}

// ClampTimeout bounds seconds to [MinTimeout, MaxTimeout].
func ClampTimeout(seconds int) int {
	if seconds < MinTimeout {
		return MinTimeout
	}
	if seconds > MaxTimeout {
		return MaxTimeout
	}
	return seconds
}

// TimeoutDuration returns the timeout as a time.Duration.
func (s Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// EnsureDirectories creates the output and code directories if absent.
func (s Settings) EnsureDirectories() error {
	for _, dir := range []string{s.OutputDir, s.CodeDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrConfiguration, dir, err)
		}
	}
	return nil
}
