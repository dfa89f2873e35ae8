package sched

import (
	"os"
	"time"

	yaml "github.com/goccy/go-yaml"
)

// SeedTask describes a task pushed into the queue before the loops start.
type SeedTask struct {
	A        int           `yaml:"a"`
	B        int           `yaml:"b"`
	Priority PriorityLevel `yaml:"priority"`
}

// Config mirrors config.yml.
type Config struct {
	FeederCount      int        `yaml:"feeder_count"`       // 10 (by default)
	FeederIntervalMS int        `yaml:"feeder_interval_ms"` // 1000 (by default)
	HandlerDelayMS   int        `yaml:"handler_delay_ms"`   // 1000 (by default)
	DrainSchedule    string     `yaml:"drain_schedule"`     // "@every 2s" (by default)
	MaxQueueDepth    int        `yaml:"max_queue_depth"`    // 0 = unbounded
	RetryAttempts    int        `yaml:"retry_attempts"`     // 1 = single try, no retry
	RetryInitialMS   int        `yaml:"retry_initial_ms"`   // 200 (by default)
	RetryMaxMS       int        `yaml:"retry_max_ms"`       // 5000 (by default)
	MetricsAddr      string     `yaml:"metrics_addr"`       // empty = metrics server disabled
	Seeds            []SeedTask `yaml:"seeds"`
}

// If the config file is not found, we use default values. The default
// seeds and feeder settings reproduce the reference workload.
func defaultConfig() Config {
	return Config{
		FeederCount:      10,
		FeederIntervalMS: 1000,
		HandlerDelayMS:   1000,
		DrainSchedule:    "@every 2s",
		MaxQueueDepth:    0,
		RetryAttempts:    1,
		RetryInitialMS:   200,
		RetryMaxMS:       5000,
		Seeds: []SeedTask{
			{A: 3, B: 2, Priority: High},
			{A: 5, B: 7, Priority: Low},
		},
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.FeederCount < 0 {
		cfg.FeederCount = 0
	}
	if cfg.FeederIntervalMS <= 0 {
		cfg.FeederIntervalMS = 1000
	}
	if cfg.HandlerDelayMS < 0 {
		cfg.HandlerDelayMS = 0
	}
	if cfg.DrainSchedule == "" {
		cfg.DrainSchedule = "@every 2s"
	}
	if cfg.MaxQueueDepth < 0 {
		cfg.MaxQueueDepth = 0
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	if cfg.RetryInitialMS <= 0 {
		cfg.RetryInitialMS = 200
	}
	if cfg.RetryMaxMS <= 0 {
		cfg.RetryMaxMS = 5000
	}

	return cfg
}

func (c Config) FeederInterval() time.Duration {
	return time.Duration(c.FeederIntervalMS) * time.Millisecond
}

func (c Config) HandlerDelay() time.Duration {
	return time.Duration(c.HandlerDelayMS) * time.Millisecond
}

func (c Config) Retry() RetryPolicy {
	return RetryPolicy{
		Attempts: c.RetryAttempts,
		Initial:  time.Duration(c.RetryInitialMS) * time.Millisecond,
		Max:      time.Duration(c.RetryMaxMS) * time.Millisecond,
	}
}
