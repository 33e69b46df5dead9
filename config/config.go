package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr" validate:"required"`
		Mode string `mapstructure:"mode" validate:"oneof=debug release test"` // debug / release
	} `mapstructure:"server"`

	Database struct {
		Driver   string `mapstructure:"driver" validate:"oneof=postgres sqlite"` // postgres / sqlite
		DSN      string `mapstructure:"dsn"`
		MaxOpen  int    `mapstructure:"max_open"`
		MaxIdle  int    `mapstructure:"max_idle"`
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"database"`

	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		BadgeTTL time.Duration `mapstructure:"badge_ttl"` // 未读角标缓存 TTL
	} `mapstructure:"redis"`

	JWT struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`

	Sync struct {
		PollInterval   time.Duration `mapstructure:"poll_interval"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
	} `mapstructure:"sync"`

	Log struct {
		Level       string `mapstructure:"level"`
		Development bool   `mapstructure:"development"`
	} `mapstructure:"log"`

	Sentry struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"sentry"`

	Trace struct {
		Enabled  bool   `mapstructure:"enabled"`
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"trace"`

	RateLimit struct {
		RPS   float64 `mapstructure:"rps"`
		Burst int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
}

// Load 读取 config/config.yaml，环境变量(TRIPMARKET_*)可覆盖
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("TRIPMARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.badge_ttl", 30*time.Second)
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("sync.poll_interval", 60*time.Second)
	v.SetDefault("sync.request_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件时全部走默认值与环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
