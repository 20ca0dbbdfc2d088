package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
	Auth   Auth   `yaml:"auth"`
}

type Server struct {
	ListenAddr    string `yaml:"listenAddr"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Auth struct {
	JWTSecret        string        `yaml:"jwtSecret"`
	AccessTokenTTL   time.Duration `yaml:"accessTokenTTL"`
	RefreshTokenTTL  time.Duration `yaml:"refreshTokenTTL"`
	AllowSignup      bool          `yaml:"allowSignup"`
	GoogleAutoCreate bool          `yaml:"googleAutoCreate"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.ListenAddr == "" {
		config.Server.ListenAddr = ":5001"
	}
	if config.Auth.AccessTokenTTL == 0 {
		config.Auth.AccessTokenTTL = 24 * time.Hour
	}
	if config.Auth.RefreshTokenTTL == 0 {
		config.Auth.RefreshTokenTTL = 30 * 24 * time.Hour
	}

	return config, nil
}
