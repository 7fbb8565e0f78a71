package forest

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a forest is created with.
type Config struct {
	// MaxLevel caps refinement below each shape's own maximum. Negative
	// means no cap.
	MaxLevel int `yaml:"maxlevel"`
	// Workers bounds how many trees adapt at once. Zero or less means
	// GOMAXPROCS.
	Workers int `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{MaxLevel: -1}
}

// ParseConfig reads yaml over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// Options are the resolved settings of a forest.
type Options struct {
	Config
	Metrics *Metrics
}

// Option is a generic option type. Implementations type assert to their
// options record and ignore options for other targets.
type Option func(any)

func WithConfig(cfg Config) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Config = cfg
		}
	}
}

func WithMaxLevel(level int) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.MaxLevel = level
		}
	}
}

func WithWorkers(n int) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Workers = n
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Metrics = m
		}
	}
}

func NewOptions(opts ...Option) Options {
	o := Options{Config: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
