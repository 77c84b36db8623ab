// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Process configuration. Every field has a compiled-in default so both
// processes run without a file.

package control

import (
	"fmt"
	"os"

	"github.com/momentics/hioload-nio/payload"
	"github.com/momentics/hioload-nio/pool"
	"gopkg.in/yaml.v3"
)

// DefaultAddr is the loopback endpoint shared by client and server.
const DefaultAddr = "127.0.0.1:9999"

// Config is the full process configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Client  ClientConfig  `yaml:"client"`
	Reactor ReactorConfig `yaml:"reactor"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig configures the listening side.
type ServerConfig struct {
	Addr       string   `yaml:"addr"`
	Backlog    int      `yaml:"backlog"`
	Vocabulary []string `yaml:"vocabulary"`
}

// ClientConfig configures the connecting side.
type ClientConfig struct {
	Addr        string   `yaml:"addr"`
	Vocabulary  []string `yaml:"vocabulary"`
	ExitOnClose bool     `yaml:"exit_on_close"`
}

// ReactorConfig tunes the selector and per-connection buffers.
type ReactorConfig struct {
	MaxEvents      int `yaml:"max_events"`
	ReadBufferSize int `yaml:"read_buffer_size"`
}

// LogConfig selects the zap encoder, level and sink.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MetricsConfig enables the debug HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       DefaultAddr,
			Backlog:    128,
			Vocabulary: append([]string(nil), payload.ServerVocabulary...),
		},
		Client: ClientConfig{
			Addr:        DefaultAddr,
			Vocabulary:  append([]string(nil), payload.ClientVocabulary...),
			ExitOnClose: true,
		},
		Reactor: ReactorConfig{
			MaxEvents:      128,
			ReadBufferSize: pool.DefaultReadBufferSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9100",
		},
	}
}

// LoadConfig overlays the YAML file at path on the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the processes cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("server.addr is empty")
	case c.Client.Addr == "":
		return fmt.Errorf("client.addr is empty")
	case len(c.Server.Vocabulary) == 0:
		return fmt.Errorf("server.vocabulary is empty")
	case len(c.Client.Vocabulary) == 0:
		return fmt.Errorf("client.vocabulary is empty")
	case c.Reactor.ReadBufferSize <= 0:
		return fmt.Errorf("reactor.read_buffer_size must be positive")
	case c.Metrics.Enabled && c.Metrics.Addr == "":
		return fmt.Errorf("metrics.addr is empty")
	}
	return nil
}
