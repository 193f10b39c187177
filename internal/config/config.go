package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Data struct {
		Path    string   `yaml:"path" validate:"required"`
		Reports []string `yaml:"reports" validate:"min=1,dive,oneof=overview daily stats"`
	} `yaml:"data"`
	Schedule struct {
		Cron       string `yaml:"cron" validate:"required"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token" validate:"required_with=ChatID"`
		ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// envOverrides lists the environment variables that win over the YAML file.
type envOverrides struct {
	DataPath   string   `envconfig:"WEATHER_DATA_PATH"`
	Reports    []string `envconfig:"WEATHER_REPORTS"`
	Cron       string   `envconfig:"WEATHER_CRON"`
	RunOnStart *bool    `envconfig:"RUN_ON_START"`
	BotToken   string   `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID     string   `envconfig:"TELEGRAM_CHAT_ID"`
	SQLitePath string   `envconfig:"SQLITE_PATH"`
	Proxy      string   `envconfig:"HTTPS_PROXY"`
}

// cronParser matches the scheduler's cron.WithSeconds() format.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Load reads config from a YAML file, then applies .env and environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	// absent .env is fine; existing environment variables are never replaced
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, &ConfigError{Type: ErrIO, Message: "read config", Err: err}
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigError{Type: ErrParsing, Message: "parse config", Err: err}
		}
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, &ConfigError{Type: ErrParsing, Message: "process environment", Err: err}
	}
	cfg.apply(env)
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) apply(env envOverrides) {
	if env.DataPath != "" {
		c.Data.Path = env.DataPath
	}
	if len(env.Reports) > 0 {
		c.Data.Reports = env.Reports
	}
	if env.Cron != "" {
		c.Schedule.Cron = env.Cron
	}
	if env.RunOnStart != nil {
		c.Schedule.RunOnStart = *env.RunOnStart
	}
	if env.BotToken != "" {
		c.Telegram.BotToken = env.BotToken
	}
	if env.ChatID != "" {
		c.Telegram.ChatID = env.ChatID
	}
	if env.SQLitePath != "" {
		c.Database.SQLitePath = env.SQLitePath
	}
	if env.Proxy != "" {
		c.Proxy = env.Proxy
	}
}

func (c *Config) setDefaults() {
	if c.Data.Path == "" {
		c.Data.Path = "data/weather.csv"
	}
	if len(c.Data.Reports) == 0 {
		c.Data.Reports = []string{"overview", "daily"}
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 0 7 * * *"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/weatherreport.db"
	}
}

// Validate checks field constraints and the cron expression.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ConfigError{Type: ErrValidation, Message: "configuration validation failed", Err: err}
	}
	if _, err := cronParser.Parse(c.Schedule.Cron); err != nil {
		return &ConfigError{Type: ErrValidation, Message: fmt.Sprintf("schedule.cron %q", c.Schedule.Cron), Err: err}
	}
	return nil
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
