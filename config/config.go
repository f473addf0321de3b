package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	BaseURL       string `env:"ECOSYSTEM_BASE_URL"`
	UserId        string `env:"ECOSYSTEM_USER_ID"`
	PublicAddress string `env:"ECOSYSTEM_PUBLIC_ADDRESS"`
	// Empty Jwt means whitelist sign in.
	Jwt           string `env:"ECOSYSTEM_JWT"`
	AppId         string `env:"ECOSYSTEM_APP_ID"`
	AdvertisingId string `env:"ECOSYSTEM_ADVERTISING_ID"`
	Verbosity     int    `env:"VERBOSITY" env-default:"3"`
	Store         StoreConfig
	Server        ServerConfig
}

type StoreConfig struct {
	Type     string `env:"STORE_TYPE" env-default:"file"`
	File     FileConfig
	Postgres PostgresConfig
	Redis    RedisConfig
}

type FileConfig struct {
	Path string `env:"STORE_FILE_PATH" env-default:"ecosystem-store.json"`
}

type PostgresConfig struct {
	ConnStr    string `env:"POSTGRES_CONN_STR"`
	ScriptsDir string `env:"POSTGRES_SCRIPTS_DIR" env-default:"resources"`
}

type RedisConfig struct {
	Url string `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
}

type ServerConfig struct {
	Port             int `env:"SERVER_PORT" env-default:"8080"`
	TokenLifeTimeSec int `env:"SERVER_TOKEN_LIFETIME_SEC" env-default:"3600"`
}

func LoadConfig(configPath string) *Config {
	conf, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load reads the json file at configPath and overlays environment variables on top of it.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, errors.Errorf("Config file can't be found, path: %v", configPath)
	}
	conf := &Config{}
	if err := cleanenv.ReadConfig(configPath, conf); err != nil {
		return nil, errors.Wrapf(err, "Cannot parse config, path: %v", configPath)
	}
	switch conf.Store.Type {
	case StoreFile, StoreMemory, StorePostgres, StoreRedis:
	default:
		return nil, errors.Errorf("Unknown store type %q, path: %v", conf.Store.Type, configPath)
	}
	if conf.Store.Type == StorePostgres && conf.Store.Postgres.ConnStr == "" {
		return nil, errors.Errorf("Postgres store requires ConnStr, path: %v", configPath)
	}
	return conf, nil
}
