package config

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gpahal/randengine/random"
)

// EnvPrefix prefixes every environment override read by Read.
const EnvPrefix = "RANDENGINE_"

// Config is the configuration shared by the CLI and the HTTP server.
type Config struct {
	Log     LogConfig     `mapstructure:"log" envPrefix:"LOG_"`
	Server  ServerConfig  `mapstructure:"server" envPrefix:"SERVER_"`
	Numbers NumbersConfig `mapstructure:"numbers" envPrefix:"NUMBERS_"`
	Strings StringsConfig `mapstructure:"strings" envPrefix:"STRINGS_"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode" env:"MODE" validate:"oneof=development production"`
	Level string `mapstructure:"level" env:"LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" env:"PORT" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" validate:"gte=0"`
}

// NumbersConfig holds the defaults used when a caller omits bounds or count.
type NumbersConfig struct {
	Min   int `mapstructure:"min" env:"MIN"`
	Max   int `mapstructure:"max" env:"MAX" validate:"gtefield=Min"`
	Count int `mapstructure:"count" env:"COUNT" validate:"gte=0"`
}

// StringsConfig holds the defaults used when a caller omits classes or length.
type StringsConfig struct {
	Classes string `mapstructure:"classes" env:"CLASSES" validate:"required"`
	Length  int    `mapstructure:"length" env:"LENGTH" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{Mode: "development", Level: "info"},
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Numbers: NumbersConfig{
			Min:   random.DefaultRange.Min,
			Max:   random.DefaultRange.Max,
			Count: 10,
		},
		Strings: StringsConfig{Classes: "lower,upper,digit", Length: 16},
	}
}

// Read starts from Default, applies the JSON file at path (if any) and then
// RANDENGINE_* environment overrides, and validates the result.
func Read(path string) (*Config, error) {
	cfg := Default()
	opts := LoadOptions{
		Validator: validator.New(validator.WithRequiredStructEnabled()),
		EnvPrefix: EnvPrefix,
	}
	if err := LoadWithOptions(path, cfg, opts); err != nil {
		return nil, err
	}
	if _, err := cfg.Strings.ParsedClasses(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c NumbersConfig) Range() random.Range {
	return random.Range{Min: c.Min, Max: c.Max}
}

func (c StringsConfig) ParsedClasses() (random.Class, error) {
	return random.ParseClasses(c.Classes)
}
