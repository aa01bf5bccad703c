package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration. Missing secrets are reported by their
// environment variable names so the operator knows exactly what to export.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(settingName)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" && isEnvName(fe.Field()) {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(invalid, "; "))
}

// settingName names fields after their env variable when they have one, otherwise
// after their config key.
func settingName(field reflect.StructField) string {
	if env := field.Tag.Get("env"); env != "" {
		return env
	}
	name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func isEnvName(name string) bool {
	for _, env := range secretEnv {
		if env == name {
			return true
		}
	}
	return false
}
