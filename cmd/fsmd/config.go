package main

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ziguss/fsm/pkg/logger"
)

var ErrLoadConfig = errors.New("failed to load config")

type config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"fsmd"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`

	// GraphFile is empty to serve the bundled task graph.
	GraphFile   string `env:"FSM_GRAPH_FILE"`
	HistorySize int    `env:"FSM_HISTORY_SIZE" envDefault:"1024"`

	HTTP httpConfig `envPrefix:"HTTP_"`
}

type httpConfig struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// loadConfig reads an optional .env file, then the process environment.
func loadConfig(files ...string) (config, error) {
	// The .env file is optional.
	_ = godotenv.Load(files...)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, errors.Join(ErrLoadConfig, err)
	}
	if cfg.LogFormat != "" {
		if _, err := logger.ParseFormat(cfg.LogFormat); err != nil {
			return config{}, errors.Join(ErrLoadConfig, err)
		}
	}
	return cfg, nil
}
