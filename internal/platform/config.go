package platform

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration, usually
// <user config dir>/mymemo/config.yaml.
type FileConfig struct {
	DataFile    string   `yaml:"data_file"`
	Debounce    Duration `yaml:"debounce"`
	Pretty      bool     `yaml:"pretty"`
	Watch       bool     `yaml:"watch"`
	EventBuffer int      `yaml:"event_buffer"`
}

// Duration accepts Go duration strings ("250ms") or plain milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var millis int64
	if err := node.Decode(&millis); err == nil {
		*d = Duration(time.Duration(millis) * time.Millisecond)
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: debounce must be a duration", node.Line)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// LoadConfig reads a YAML config file. A missing file yields a zero config.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Debounce < 0 {
		return cfg, fmt.Errorf("parse config %s: negative debounce", path)
	}
	if cfg.EventBuffer < 0 {
		return cfg, fmt.Errorf("parse config %s: negative event_buffer", path)
	}
	return cfg, nil
}

// Options converts the file values into options. Zero values are skipped so
// the defaults stay in place.
func (c FileConfig) Options() []Option {
	var opts []Option
	if c.Debounce > 0 {
		opts = append(opts, WithDebounce(time.Duration(c.Debounce)))
	}
	if c.Pretty {
		opts = append(opts, WithPretty(true))
	}
	if c.Watch {
		opts = append(opts, WithWatch(true))
	}
	if c.EventBuffer > 0 {
		opts = append(opts, WithEventBuffer(c.EventBuffer))
	}
	return opts
}
