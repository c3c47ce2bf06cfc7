package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	SWAPI    SWAPIConfig    `mapstructure:"swapi"`
	Scenario ScenarioConfig `mapstructure:"scenario"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SWAPIConfig holds API connection details
type SWAPIConfig struct {
	URL           string        `mapstructure:"url" validate:"required,url,startswith=http"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Retries       int           `mapstructure:"retries" validate:"min=0,max=10"`
	LenientStatus bool          `mapstructure:"lenient_status"`
	UserAgent     string        `mapstructure:"user_agent"`
}

// ScenarioConfig names the entities the scenario looks up
type ScenarioConfig struct {
	Film          string `mapstructure:"film" validate:"required"`
	Planet        string `mapstructure:"planet" validate:"required"`
	Starship      string `mapstructure:"starship" validate:"required"`
	SpeciesFilter string `mapstructure:"species_filter" validate:"required"`
	Concurrency   int    `mapstructure:"concurrency" validate:"min=1,max=20"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  string `mapstructure:"color" validate:"oneof=auto always never"`
}
