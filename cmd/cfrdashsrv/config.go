package main

import "github.com/ilyakaznacheev/cleanenv"

// Config is the server's environment configuration. Flags override any
// value set here.
type Config struct {
	Addr       string `env:"CFRDASH_ADDR" env-default:"127.0.0.1:8089"`
	DebugLevel string `env:"CFRDASH_DEBUGLEVEL" env-default:"info"`
	Seed       int64  `env:"CFRDASH_SEED" env-default:"0"`
	ModelDir   string `env:"CFRDASH_MODEL_DIR" env-default:""`
	MaxModels  int    `env:"CFRDASH_MAX_MODELS" env-default:"3"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
