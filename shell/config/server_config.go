package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// HTTPServer holds the listener settings.
type HTTPServer struct {
	Addr            string        `yaml:"address" env:"ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// ServerConfig is the full configuration of the lending service.
// Storage selects the catalog store engine: "postgres" or "memory".
type ServerConfig struct {
	Env         string     `yaml:"env" env:"ENV" env-default:"prod"`
	Storage     string     `yaml:"storage" env:"STORAGE" env-default:"postgres"`
	PostgresDSN string     `yaml:"postgres_dsn" env:"POSTGRES_DSN" env-default:""`
	TokenSecret string     `yaml:"token_secret" env:"TOKEN_SECRET" env-default:""`
	HTTPServer  HTTPServer `yaml:"http_server"`
}

// MustLoad reads the configuration from the file named by CONFIG_PATH when set,
// otherwise from the environment alone. It exits the process on failure, which
// is acceptable at startup time.
func MustLoad() *ServerConfig {
	var cfg ServerConfig

	configPath := os.Getenv("CONFIG_PATH")

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("config file does not exist: %s", configPath)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config file: %s", err.Error())
		}

		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err.Error())
	}

	return &cfg
}
