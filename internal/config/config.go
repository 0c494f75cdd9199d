package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"xuanwei-server/internal/util"
)

// Config provides configuration for the Xuanwei server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	// StartGameDelay is the number of seconds before a created game starts
	StartGameDelay int `yaml:"startGameDelay" envconfig:"start_game_delay"`
	// PlayerCreateDelay is the number of seconds a remote address must wait
	// between two player create requests
	PlayerCreateDelay int `yaml:"playerCreateDelay" envconfig:"player_create_delay"`
}

var config Config

// DefaultConfig returns a config object with sane defaults
func DefaultConfig() Config {
	cfg := Config{}
	cfg.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.MigrationsPath = "./migrations"
	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"
	cfg.StartGameDelay = 10
	cfg.PlayerCreateDelay = 60

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("XW_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("xw", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
