package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	DSN       string          `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP      HTTPConfig      `yaml:"http"`
	Redis     RedisConf       `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Site      SiteConfig      `yaml:"site"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type RedisConf struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type AuthConfig struct {
	Secret     string        `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
	AccessTTL  time.Duration `yaml:"access_ttl" env-default:"15m"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env-default:"168h"`
}

// SiteConfig describes the publisher in generated structured data.
type SiteConfig struct {
	BaseURL          string `yaml:"base_url" env:"SITE_BASE_URL" env-default:"http://localhost:8080"`
	OrganizationName string `yaml:"organization_name" env-default:"Magazine"`
	OrganizationLogo string `yaml:"organization_logo"`
}

type AnalyticsConfig struct {
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"1m"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"5s"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

// LoadPath reads the YAML file and applies environment overrides. A .env
// file in the working directory, if any, is loaded first.
func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &PathError{Path: configPath}
	}

	_ = godotenv.Load()

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return "config file does not exist: " + e.Path
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
