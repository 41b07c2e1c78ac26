// Package config holds starter configuration and the supervisor identity.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Identity is the (publisher, application) pair that scopes the
// single-instance lock and the journal file name. It is fixed at startup
// and never changes while the starter runs.
type Identity struct {
	Publisher string `yaml:"publisher" mapstructure:"publisher"`
	App       string `yaml:"app" mapstructure:"app"`
}

// Key returns the systemwide lock key for this identity.
func (id Identity) Key() string {
	return id.Publisher + " " + id.App
}

// Validate checks the identity invariants.
func (id Identity) Validate() error {
	if id.Publisher == "" {
		return fmt.Errorf("identity: publisher must not be empty")
	}
	if id.App == "" {
		return fmt.Errorf("identity: app must not be empty")
	}
	return nil
}

// TargetConfig describes the application the starter keeps running.
type TargetConfig struct {
	// Name is the logical process name, e.g. "AutoQC". The process table
	// is queried by this name, and executable/reference file names are
	// derived from it.
	Name string `yaml:"name" mapstructure:"name"`

	// Channels lists the known release channels. The first entry is the
	// default channel and uses unsuffixed file names; every other channel
	// appends "-<channel>" to the target name.
	Channels []string `yaml:"channels" mapstructure:"channels"`
}

// Config is the full starter configuration.
type Config struct {
	Identity Identity     `yaml:"identity" mapstructure:"identity"`
	Target   TargetConfig `yaml:"target" mapstructure:"target"`

	// Interval between monitor ticks.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// LogDir overrides the journal directory. Empty means the directory
	// of the starter executable.
	LogDir string `yaml:"log_dir" mapstructure:"log_dir"`

	// MetricsListen is an optional address for the Prometheus endpoint,
	// e.g. ":9093". Empty disables the listener.
	MetricsListen string `yaml:"metrics_listen" mapstructure:"metrics_listen"`

	// Notifier selects how terminal failures are surfaced to the
	// operator: "desktop", "console" or "none".
	Notifier string `yaml:"notifier" mapstructure:"notifier"`

	// LogLevel sets the diagnostic slog level: debug, info, warn, error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// Default returns the configuration the starter ships with.
func Default() *Config {
	return &Config{
		Identity: Identity{
			Publisher: "MacCoss Lab, UW",
			App:       "AutoQCStarter",
		},
		Target: TargetConfig{
			Name:     "AutoQC",
			Channels: []string{"release", "daily"},
		},
		Interval: 1 * time.Minute,
		Notifier: "desktop",
		LogLevel: "info",
	}
}

// Load reads configuration from a YAML file and applies defaults for
// anything the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if err := c.Identity.Validate(); err != nil {
		return err
	}
	if c.Target.Name == "" {
		return fmt.Errorf("target: name must not be empty")
	}
	if len(c.Target.Channels) == 0 {
		return fmt.Errorf("target: at least one channel is required")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	return nil
}

// DefaultChannel returns the channel used when no argument is supplied.
func (c *Config) DefaultChannel() string {
	return c.Target.Channels[0]
}

// IsChannel reports whether s names a known release channel.
func (c *Config) IsChannel(s string) bool {
	for _, ch := range c.Target.Channels {
		if strings.EqualFold(ch, s) {
			return true
		}
	}
	return false
}

// channelSuffix returns the file name suffix for a channel. The default
// channel uses unsuffixed names.
func (c *Config) channelSuffix(channel string) string {
	if strings.EqualFold(channel, c.DefaultChannel()) {
		return ""
	}
	return "-" + strings.ToLower(channel)
}

// ReferenceFileName returns the application-reference file name for a
// channel, e.g. "AutoQC.appref-ms" or "AutoQC-daily.appref-ms".
func (c *Config) ReferenceFileName(channel string) string {
	return c.Target.Name + c.channelSuffix(channel) + ".appref-ms"
}

// ExecutableName returns the target executable file name for a channel,
// e.g. "AutoQC.exe" or "AutoQC-daily.exe".
func (c *Config) ExecutableName(channel string) string {
	return c.Target.Name + c.channelSuffix(channel) + ".exe"
}

// AcceptedExecutables returns every executable file name an explicit path
// argument is allowed to end with, across all channels.
func (c *Config) AcceptedExecutables() []string {
	names := make([]string, 0, len(c.Target.Channels))
	for _, ch := range c.Target.Channels {
		names = append(names, c.ExecutableName(ch))
	}
	return names
}
