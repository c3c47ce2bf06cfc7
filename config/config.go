package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default scenario inputs
const (
	DefaultURL           = "https://swapi.dev/api/"
	DefaultFilm          = "A New Hope"
	DefaultPlanet        = "Tatooine"
	DefaultStarship      = "X-wing"
	DefaultSpeciesFilter = "homeworld == planetURL"
)

// Load loads the configuration. A missing file is fine when no explicit
// path is given: defaults and HOLOCRON_* environment variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("holocron")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".holocron"))
		}

		v.AddConfigPath("/etc/holocron/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// SWAPI defaults
	v.SetDefault("swapi.url", DefaultURL)
	v.SetDefault("swapi.timeout", "30s")
	v.SetDefault("swapi.retries", 0)
	v.SetDefault("swapi.lenient_status", false)
	v.SetDefault("swapi.user_agent", "holocron")

	// Scenario defaults
	v.SetDefault("scenario.film", DefaultFilm)
	v.SetDefault("scenario.planet", DefaultPlanet)
	v.SetDefault("scenario.starship", DefaultStarship)
	v.SetDefault("scenario.species_filter", DefaultSpeciesFilter)
	v.SetDefault("scenario.concurrency", 1)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", "auto")
}

var validate = newValidator()

// newValidator reports fields by their config key, e.g. "swapi.url"
func newValidator() func(*Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return func(cfg *Config) error {
		err := v.Struct(cfg)
		if err == nil {
			return nil
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			key := fe.Namespace()
			if _, rest, ok := strings.Cut(key, "."); ok {
				key = rest
			}
			msgs = append(msgs, fmt.Sprintf("%s: failed %q check (value %v)", key, fe.Tag(), fe.Value()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
}

// Validate checks a configuration built or modified outside Load
func (c *Config) Validate() error {
	return validate(c)
}
