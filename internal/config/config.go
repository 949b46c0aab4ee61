// Package config loads the qdeck.yaml settings shared by every command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"qdeck/circuit"
	"qdeck/gate"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "qdeck.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds router limits and logging settings.
type Config struct {
	MaxQubits int     `yaml:"max_qubits"`
	Tolerance float64 `yaml:"tolerance"`
	Workers   int     `yaml:"workers"`
	LogLevel  string  `yaml:"log_level"`
	// LogFormat is text, json or logfmt.
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxQubits: 10,
		Tolerance: gate.Tolerance,
		Workers:   runtime.GOMAXPROCS(0),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads path over the defaults. An empty path loads DefaultPath if it
// exists and the defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return cfg, nil
		}
		path = DefaultPath
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its admissible range.
func (c Config) Validate() error {
	if c.MaxQubits < 1 || c.MaxQubits > circuit.MaxQubits {
		return fmt.Errorf("%w: max_qubits %d outside [1, %d]", ErrInvalid, c.MaxQubits, circuit.MaxQubits)
	}
	if !(c.Tolerance > 0) || c.Tolerance >= 1 {
		return fmt.Errorf("%w: tolerance %g outside (0, 1)", ErrInvalid, c.Tolerance)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d < 1", ErrInvalid, c.Workers)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if _, ok := formatters[strings.ToLower(c.LogFormat)]; !ok {
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

var formatters = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
}

// Logger builds a logger writing to w at the configured level and format.
func (c Config) Logger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	formatter, ok := formatters[strings.ToLower(c.LogFormat)]
	if !ok {
		return nil, fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		Prefix:          "qdeck",
		ReportTimestamp: level <= log.DebugLevel,
	}), nil
}

// Encode writes c as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}
