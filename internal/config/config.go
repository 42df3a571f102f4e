package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/factory"
	redisstorage "github.com/mcoot/tictactoe-go/internal/storage/redis"
)

// FileEnv names the environment variable holding an optional YAML config path
const FileEnv = "TTT_CONFIG"

// Config is the server configuration. Environment variables override the file.
type Config struct {
	LogLevel string  `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
}

type HTTP struct {
	Host            string        `yaml:"host" env:"TTT_HTTP_HOST"`
	Port            int           `yaml:"port" env:"TTT_HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"TTT_HTTP_READ_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"TTT_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Storage struct {
	Type  string `yaml:"type" env:"TTT_STORAGE_TYPE" env-default:"memory"`
	Redis Redis  `yaml:"redis"`
}

type Redis struct {
	URL          string        `yaml:"url" env:"TTT_REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize     int           `yaml:"pool-size" env:"TTT_REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `yaml:"min-idle-conns" env:"TTT_REDIS_MIN_IDLE_CONNS" env-default:"2"`
	SessionTTL   time.Duration `yaml:"session-ttl" env:"TTT_SESSION_TTL" env-default:"24h"`
}

// Load reads the YAML file named by TTT_CONFIG when set, then the environment
func Load() (*Config, error) {
	cfg := &Config{}

	var err error
	if path := os.Getenv(FileEnv); path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case factory.StorageTypeMemory, factory.StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be %q or %q",
			c.Storage.Type, factory.StorageTypeMemory, factory.StorageTypeRedis)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Server returns the HTTP server settings
func (c *Config) Server() api.ServerConfig {
	server := api.DefaultServerConfig()
	server.Host = c.HTTP.Host
	server.Port = c.HTTP.Port
	server.ReadTimeout = c.HTTP.ReadTimeout
	server.ShutdownTimeout = c.HTTP.ShutdownTimeout
	return server
}

// Factory returns the application factory settings
func (c *Config) Factory(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: c.Storage.Type,
	}
	if c.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.Storage.Redis.URL
		redisCfg.PoolSize = c.Storage.Redis.PoolSize
		redisCfg.MinIdleConns = c.Storage.Redis.MinIdleConns
		redisCfg.SessionTTL = c.Storage.Redis.SessionTTL
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}
