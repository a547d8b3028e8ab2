package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	JobAdder  JobAdderConfig  `mapstructure:"jobadder"`
	Sanity    SanityConfig    `mapstructure:"sanity"`
	Mailer    MailerConfig    `mapstructure:"mailer"`
	Turnstile TurnstileConfig `mapstructure:"turnstile"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Queue     QueueConfig     `mapstructure:"queue"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name         string `mapstructure:"name"`
	Port         int    `mapstructure:"port"`
	Env          string `mapstructure:"env"`
	BaseURL      string `mapstructure:"base_url"`
	AllowOrigins string `mapstructure:"allow_origins"`
}

type JobAdderConfig struct {
	ClientID      string        `mapstructure:"client_id"`
	ClientSecret  string        `mapstructure:"client_secret"`
	BoardID       string        `mapstructure:"board_id"`
	AuthBaseURL   string        `mapstructure:"auth_base_url"`
	APIBaseURL    string        `mapstructure:"api_base_url"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type SanityConfig struct {
	ProjectID     string        `mapstructure:"project_id"`
	Dataset       string        `mapstructure:"dataset"`
	Token         string        `mapstructure:"token"`
	APIVersion    string        `mapstructure:"api_version"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type MailerConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	From    string        `mapstructure:"from"`
	To      string        `mapstructure:"to"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TurnstileConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	SecretKey string `mapstructure:"secret_key"`
	VerifyURL string `mapstructure:"verify_url"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SyncConfig struct {
	BatchSize     int    `mapstructure:"batch_size"`
	Schedule      string `mapstructure:"schedule"`
	RunOnStart    bool   `mapstructure:"run_on_start"`
	TriggerSecret string `mapstructure:"trigger_secret"`
}

type QueueConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxRetry    int `mapstructure:"max_retry"`
}

type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Timeouts are given in seconds in config.yaml
	cfg.JobAdder.Timeout = cfg.JobAdder.Timeout * time.Second
	cfg.Sanity.Timeout = cfg.Sanity.Timeout * time.Second
	cfg.Mailer.Timeout = cfg.Mailer.Timeout * time.Second

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.JobAdder.AuthBaseURL == "" {
		cfg.JobAdder.AuthBaseURL = "https://id.jobadder.com"
	}
	if cfg.JobAdder.APIBaseURL == "" {
		cfg.JobAdder.APIBaseURL = "https://api.jobadder.com/v2"
	}
	if cfg.Sanity.APIVersion == "" {
		cfg.Sanity.APIVersion = "v2021-10-21"
	}
	if cfg.Turnstile.VerifyURL == "" {
		cfg.Turnstile.VerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	}
	if cfg.Mailer.BaseURL == "" {
		cfg.Mailer.BaseURL = "https://api.resend.com"
	}
	if cfg.Sync.BatchSize <= 0 {
		cfg.Sync.BatchSize = 50
	}
	if cfg.Queue.Concurrency <= 0 {
		cfg.Queue.Concurrency = 5
	}
	if cfg.Queue.MaxRetry <= 0 {
		cfg.Queue.MaxRetry = 5
	}
	if cfg.RateLimit.Requests <= 0 {
		cfg.RateLimit.Requests = 10
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
