// Package config manages application configuration from environment variables,
// an optional config file, and built-in defaults.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration is returned for any configuration that cannot be loaded or validated.
var ErrConfiguration = errors.New("configuration error")

// ErrMissingSetting is returned when a required setting, usually a secret, is absent.
var ErrMissingSetting = errors.New("missing required setting")

// Config defines the application configuration. Secrets come from TG_BOT_TOKEN,
// TG_CHAT_ID and OPENWEATHER_API_KEY; everything else may be set in config.yaml or
// through MORNINGBOT_* environment variables.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Quotes    QuotesConfig    `mapstructure:"quotes"`
	Image     ImageConfig     `mapstructure:"image"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`

	// Timezone is the IANA zone used to decide what "today" is.
	Timezone string `mapstructure:"timezone" validate:"required"`

	// Roster and Messages are fixed data, filled from defaults after unmarshalling.
	Roster   []Person       `mapstructure:"-" validate:"required,min=1,dive"`
	Messages GreetingTexts  `mapstructure:"-"`
	Location *time.Location `mapstructure:"-"`
}

// TelegramConfig holds the delivery destination and credentials.
type TelegramConfig struct {
	Token     string        `mapstructure:"token"      env:"TG_BOT_TOKEN" validate:"required" masq:"secret"`
	ChatID    string        `mapstructure:"chat_id"    env:"TG_CHAT_ID"   validate:"required"`
	ServerURL string        `mapstructure:"server_url" validate:"omitempty,url"`
	Timeout   time.Duration `mapstructure:"timeout"    validate:"min=1s,max=5m"`
}

// WeatherConfig holds the weather provider settings.
type WeatherConfig struct {
	APIKey   string        `mapstructure:"api_key"  env:"OPENWEATHER_API_KEY" validate:"required" masq:"secret"`
	BaseURL  string        `mapstructure:"base_url" validate:"required,url"`
	Units    string        `mapstructure:"units"    validate:"oneof=metric imperial standard"`
	Language string        `mapstructure:"language" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout"  validate:"min=1s,max=1m"`

	// City is fixed; see DefaultCity.
	City string `mapstructure:"-" validate:"required"`
}

// QuotesConfig points at the newline-delimited quote file.
type QuotesConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ImageConfig controls the optional image composition step.
type ImageConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	BackgroundPath string   `mapstructure:"background_path" validate:"required_if=Enabled true"`
	FontPaths      []string `mapstructure:"font_paths"`
	Filename       string   `mapstructure:"filename"        validate:"required_if=Enabled true"`
	Quality        int      `mapstructure:"quality"         validate:"min=1,max=100"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
	// File enables an additional rotating log file when non-empty.
	File string `mapstructure:"file"`
}

// SchedulerConfig describes cron tasks for daemon mode.
type SchedulerConfig struct {
	RunOnStart bool                  `mapstructure:"run_on_start"`
	Tasks      map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig is a single scheduled task entry.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// Person is one roster entry whose anniversary is counted down every morning.
type Person struct {
	Name  string    `validate:"required"`
	Birth time.Time `validate:"required"`
}

// GreetingTexts are the fixed lines of the morning message. Fields ending in
// Format are fmt templates.
type GreetingTexts struct {
	Opening             []string
	QuotePrefix         string
	RosterHeader        string
	RosterLineFormat    string
	WeatherPrefix       string
	WeatherFormat       string
	WeatherFailedFormat string
	Closing             []string
	QuotesEmpty         string
	QuoteLostFormat     string
	CaptionLimit        int
}
