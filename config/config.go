package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries everything the API server needs at startup. Values come
// from an optional YAML file overlaid on GLASSLINK_* environment variables.
type Config struct {
	Addr            string        `yaml:"addr"`
	DatabaseURL     string        `yaml:"database_url"`
	JWTSecret       string        `yaml:"jwt_secret"`
	TokenDuration   time.Duration `yaml:"token_duration"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("GLASSLINK_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("GLASSLINK_JWT_SECRET", "dev-secret"),
		TokenDuration:   24 * time.Hour,
		RequestTimeout:  15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimitRPS:    50,
		RateLimitBurst:  100,
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
