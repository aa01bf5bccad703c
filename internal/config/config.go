package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // timezone lookup must not depend on the host
)

// Load loads and validates configuration from:
// 1. Default values
// 2. the optional YAML file at path
// 3. MORNINGBOT_* environment variables
// 4. TG_BOT_TOKEN, TG_CHAT_ID and OPENWEATHER_API_KEY
//
// It performs no network access; a missing secret fails with ErrMissingSetting.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}
	cfg.applyFixedData()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timezone %q: %v", ErrConfiguration, cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// applyFixedData fills the settings that are part of the program rather than its environment.
func (c *Config) applyFixedData() {
	c.Roster = DefaultRoster()
	c.Messages = DefaultGreetingTexts()
	c.Weather.City = DefaultCity
}

// Task returns the scheduler entry for name and whether it is enabled.
func (c *Config) Task(name string) (TaskConfig, bool) {
	task, ok := c.Scheduler.Tasks[name]
	return task, ok && task.Enabled
}
