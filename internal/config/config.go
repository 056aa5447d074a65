package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string  `yml:"env" default:"local"`
	Server  Server  `yml:"server" env-required:"true"`
	Storage Storage `yml:"storage"`
}

// Storage configures the embedded SQLite database that holds the persisted
// identity snapshots. The domain catalogue itself is in-memory.
type Storage struct {
	Path            string        `yml:"path" env:"STORAGE_PATH" default:"data/sessions.db"`
	MaxOpenConns    int           `yml:"max_open_conns" default:"1"`
	ConnMaxLifetime time.Duration `yml:"conn_max_lifetime" default:"5m"`
}

type Server struct {
	Host    string        `yml:"host" default:"localhost"`
	Port    string        `yml:"port" default:"8080"`
	Timeout time.Duration `yml:"timeout" default:"5s"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}
