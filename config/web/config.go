package config

import "github.com/ilyakaznacheev/cleanenv"

type Config struct {
	Port      int    `env:"PORT" env-default:"8080"`
	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret"`

	// Optional, the gateway falls back to in-memory storage without it.
	PostgresDSN string `env:"POSTGRES_DSN"`

	Converter   ServiceConfig `env-prefix:"CONVERTER_"`
	ASR         ServiceConfig `env-prefix:"ASR_"`
	Diarization ServiceConfig `env-prefix:"DIARIZATION_"`
	LLM         LLMConfig     `env-prefix:"LLM_"`
}

type ServiceConfig struct {
	URL    string `env:"URL"`
	APIKey string `env:"API_KEY"`
	// Model is only meaningful for services that accept one.
	Model string `env:"MODEL"`
}

type LLMConfig struct {
	BaseURL string `env:"BASE_URL"`
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" env-default:"gpt-4o-mini"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("failed to read environment variables: " + err.Error())
	}

	return &cfg
}
