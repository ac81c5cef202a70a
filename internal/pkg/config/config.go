// Package config loads the immutable process configuration.
//
// Values come from defaults, an optional YAML file and DEMOSTATS_* environment
// variables, in increasing priority. Commands bind their flags on top.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/demostats/internal/domain"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/spf13/viper"
)

type Log struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

type Source struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	PageSize       int           `mapstructure:"page_size" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	MaxRetries     uint64        `mapstructure:"max_retries"`
	RetryInterval  time.Duration `mapstructure:"retry_interval" validate:"gte=0"`
}

type Collector struct {
	StartYear int    `mapstructure:"start_year" validate:"gt=0"`
	EndYear   int    `mapstructure:"end_year" validate:"gtefield=StartYear"`
	OutputDir string `mapstructure:"output_dir" validate:"required"`
	Workers   int    `mapstructure:"workers" validate:"gt=0"`
}

type Server struct {
	Addr            string   `mapstructure:"addr" validate:"required"`
	AllowOrigins    []string `mapstructure:"allow_origins"`
	CollectSchedule string   `mapstructure:"collect_schedule"`
}

type Dashboard struct {
	DefaultIndicator string                 `mapstructure:"default_indicator"`
	DefaultYear      int                    `mapstructure:"default_year"`
	TopN             int                    `mapstructure:"top_n" validate:"gt=0"`
	Countries        []string               `mapstructure:"countries"`
	NotableEntities  []domain.NotableEntity `mapstructure:"notable_entities" validate:"dive"`
}

type Config struct {
	Log        Log                `mapstructure:"log"`
	Source     Source             `mapstructure:"source"`
	Collector  Collector          `mapstructure:"collector"`
	Server     Server             `mapstructure:"server"`
	Dashboard  Dashboard          `mapstructure:"dashboard"`
	Indicators []domain.Indicator `mapstructure:"indicators" validate:"required,dive"`
}

// NewViper returns a viper instance with defaults and env bindings applied.
// configFile may be empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	return v, nil
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperLogLevel, "info")
	v.SetDefault(constants.ViperLogDevelopment, false)

	v.SetDefault(constants.ViperSourceBaseURL, "https://api.worldbank.org/v2/countries/all/indicators")
	v.SetDefault(constants.ViperSourcePageSize, 1000)
	v.SetDefault(constants.ViperSourceRequestTimeout, 30*time.Second)
	v.SetDefault(constants.ViperSourceMaxRetries, 3)
	v.SetDefault(constants.ViperSourceRetryInterval, 500*time.Millisecond)

	v.SetDefault(constants.ViperCollectorStartYear, 1960)
	v.SetDefault(constants.ViperCollectorEndYear, 0)
	v.SetDefault(constants.ViperCollectorOutputDir, "data")
	v.SetDefault(constants.ViperCollectorWorkers, 3)

	v.SetDefault(constants.ViperServerAddr, ":8050")
	v.SetDefault(constants.ViperServerAllowOrigins, []string{"http://localhost:3000"})
	v.SetDefault(constants.ViperServerCollectSchedule, "")

	v.SetDefault(constants.ViperDashboardDefaultIndicator, "fertility_rate")
	v.SetDefault(constants.ViperDashboardDefaultYear, 2020)
	v.SetDefault(constants.ViperDashboardTopN, 10)
	v.SetDefault(constants.ViperDashboardCountries, DefaultCountries())
}

// New decodes and validates the configuration held by v.
func New(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal: %w", err)
	}

	if len(cfg.Indicators) == 0 {
		cfg.Indicators = DefaultIndicators()
	}
	if !v.IsSet(constants.ViperDashboardNotableEntities) {
		cfg.Dashboard.NotableEntities = DefaultNotableEntities()
	}
	if cfg.Collector.EndYear == 0 {
		cfg.Collector.EndYear = time.Now().Year()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Indicators))
	for _, ind := range c.Indicators {
		if _, ok := seen[ind.Name]; ok {
			return fmt.Errorf("invalid config: duplicate indicator name %q", ind.Name)
		}
		seen[ind.Name] = struct{}{}
	}

	if c.Dashboard.DefaultIndicator != "" {
		if _, ok := c.Indicator(c.Dashboard.DefaultIndicator); !ok {
			return errors.New("invalid config: default indicator is not in the catalog")
		}
	}

	return nil
}

// Indicator looks an indicator up by its table name.
func (c *Config) Indicator(name string) (domain.Indicator, bool) {
	for _, ind := range c.Indicators {
		if ind.Name == name {
			return ind, true
		}
	}
	return domain.Indicator{}, false
}
