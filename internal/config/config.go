package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string    `mapstructure:"env" validate:"required"`                 // current application environment (local, dev, production)
	LogLevel          string    `mapstructure:"log_level" validate:"required"`           // zap level name
	QuestionsJSONPath string    `mapstructure:"questions_json_path" validate:"required"` // path to the question bank
	Storage           Storage   `mapstructure:"storage"`
	Game              Game      `mapstructure:"game"`
	Analytics         Analytics `mapstructure:"analytics"`
	Telegram          Telegram  `mapstructure:"telegram"`
	Report            Report    `mapstructure:"report"`
	Metrics           Metrics   `mapstructure:"metrics"`
}

// Storage selects and configures the key-value backend.
type Storage struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=sqlite postgres redis memory"`
	SQLitePath      string        `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	DatabaseURL     string        `mapstructure:"-"` // loaded from DATABASE_URL
	RedisURL        string        `mapstructure:"-"` // loaded from REDIS_URL
	MaxConnections  int           `mapstructure:"max_connections" validate:"gte=1"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the connection string the selected driver needs.
func (s Storage) DSN() (string, error) {
	var dsn string
	switch s.Driver {
	case "postgres":
		dsn = s.DatabaseURL
	case "redis":
		dsn = s.RedisURL
	case "sqlite":
		dsn = s.SQLitePath
	default:
		return "", nil
	}
	if dsn == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return dsn, nil
}

// Game holds session timing and pricing.
type Game struct {
	QuestionCount      int           `mapstructure:"question_count" validate:"gte=1,lte=50"`
	QuestionTimeLimit  time.Duration `mapstructure:"question_time_limit" validate:"gt=0"`
	AnswerDisplayDelay time.Duration `mapstructure:"answer_display_delay" validate:"gte=0"`
	HintCost           int           `mapstructure:"hint_cost" validate:"gte=0"`
}

// Analytics configures the trend analysis job.
type Analytics struct {
	Schedule string `mapstructure:"schedule" validate:"required"` // cron spec or @every descriptor
}

// Telegram configures the optional notification channel.
type Telegram struct {
	Token  string `mapstructure:"-"` // loaded from TELEGRAM_API_TOKEN
	ChatID int64  `mapstructure:"-"` // loaded from TELEGRAM_CHAT_ID
}

// Enabled reports whether notifications should also go to Telegram.
func (t Telegram) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Report configures the spreadsheet export.
type Report struct {
	Path string `mapstructure:"path" validate:"required"`
}

// Metrics configures the Prometheus textfile dump written on exit.
type Metrics struct {
	TextfilePath string `mapstructure:"textfile_path"` // empty disables the dump
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("questions_json_path", "assets/questions.json")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "logicmaster.db")
	v.SetDefault("storage.max_connections", 5)
	v.SetDefault("storage.max_conn_lifetime", "30m")
	v.SetDefault("game.question_count", 10)
	v.SetDefault("game.question_time_limit", "30s")
	v.SetDefault("game.answer_display_delay", "2s")
	v.SetDefault("game.hint_cost", 50)
	v.SetDefault("analytics.schedule", "@every 1h")
	v.SetDefault("report.path", "logicmaster-report.xlsx")
	v.SetDefault("metrics.textfile_path", "")

	// Map nested keys to ENV style names, e.g. STORAGE_DRIVER.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram_chat_id", "TELEGRAM_CHAT_ID")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Telegram.Token = v.GetString("telegram_api_token")
	cfg.Telegram.ChatID = v.GetInt64("telegram_chat_id")
	cfg.Storage.DatabaseURL = v.GetString("database_url")
	cfg.Storage.RedisURL = v.GetString("redis_url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and that the selected storage driver is reachable.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Storage.DSN(); err != nil {
		return fmt.Errorf("storage %s: %w", c.Storage.Driver, err)
	}
	return nil
}
