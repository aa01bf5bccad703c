package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides of non-secret settings, e.g. MORNINGBOT_LOGGER_LEVEL.
const EnvPrefix = "MORNINGBOT"

// secretEnv maps config keys to the fixed environment variables holding the secrets.
var secretEnv = map[string]string{
	"telegram.token":   "TG_BOT_TOKEN",
	"telegram.chat_id": "TG_CHAT_ID",
	"weather.api_key":  "OPENWEATHER_API_KEY",
}

// newViper builds a viper instance with defaults, the optional config file and env bindings.
func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			// Missing config file is okay, defaults and env cover everything
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range secretEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return v, nil
}

// setDefaults sets default values for optional configuration parameters
func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", DefaultTimezone)

	v.SetDefault("telegram.timeout", DefaultTelegramTimeout)
	v.SetDefault("telegram.server_url", "")

	v.SetDefault("weather.base_url", DefaultWeatherBaseURL)
	v.SetDefault("weather.units", DefaultWeatherUnits)
	v.SetDefault("weather.language", DefaultWeatherLanguage)
	v.SetDefault("weather.timeout", DefaultWeatherTimeout)

	v.SetDefault("quotes.path", DefaultQuotesPath)

	v.SetDefault("image.enabled", true)
	v.SetDefault("image.background_path", DefaultBackgroundPath)
	v.SetDefault("image.font_paths", DefaultFontPaths)
	v.SetDefault("image.filename", DefaultImageFilename)
	v.SetDefault("image.quality", DefaultImageQuality)

	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)
	v.SetDefault("logger.file", "")

	v.SetDefault("scheduler.run_on_start", false)
	v.SetDefault("scheduler.tasks", map[string]any{
		MorningTaskName: map[string]any{
			"enabled":  true,
			"schedule": DefaultMorningSchedule,
		},
	})
}
