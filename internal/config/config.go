package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Origin  string `yaml:"origin"`
}

type ProviderConfig struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anon_key"`
	Timeout string `yaml:"timeout"`
}

type StorageConfig struct {
	AvatarBucket string `yaml:"avatar_bucket"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StateConfig struct {
	Namespace   string `yaml:"namespace"`
	SnapshotTTL string `yaml:"snapshot_ttl"`
	RedirectTTL string `yaml:"redirect_ttl"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Provider ProviderConfig `yaml:"provider"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	State    StateConfig    `yaml:"state"`
}

type Config struct {
	Port            string
	GinMode         string
	Origin          string
	ProviderURL     string
	ProviderAnonKey string
	ProviderTimeout time.Duration
	AvatarBucket    string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	StateNamespace  string
	SnapshotTTL     time.Duration
	RedirectTTL     time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	provTimeout, err := time.ParseDuration(configFile.Provider.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid provider timeout: %w", err)
	}

	snapTTL, err := time.ParseDuration(configFile.State.SnapshotTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot TTL: %w", err)
	}

	redirTTL, err := time.ParseDuration(configFile.State.RedirectTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect TTL: %w", err)
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		Origin:          configFile.App.Origin,
		ProviderURL:     env("PROVIDER_URL", configFile.Provider.URL),
		ProviderAnonKey: env("PROVIDER_ANON_KEY", configFile.Provider.AnonKey),
		ProviderTimeout: provTimeout,
		AvatarBucket:    configFile.Storage.AvatarBucket,
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		StateNamespace:  configFile.State.Namespace,
		SnapshotTTL:     snapTTL,
		RedirectTTL:     redirTTL,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
