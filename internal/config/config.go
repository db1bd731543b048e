package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// Requerida por el servidor HTTP; el CLI funciona sin base de datos.
	DatabaseURL string `env:"DATABASE_URL"`

	// El LLM es opcional: sin api key se usa el generador fallback.
	LLMAPIKey      string  `env:"LLM_API_KEY"`
	LLMBaseURL     string  `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel       string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMMaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"400"`
	LLMTemperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`

	// top_k o threshold; nunca se mezclan.
	RecommendPolicy string `env:"RECOMMEND_POLICY" envDefault:"top_k"`

	ShareTokenSecret     string `env:"SHARE_TOKEN_SECRET"`
	ShareTokenTTLMinutes int    `env:"SHARE_TOKEN_TTL_MINUTES" envDefault:"1440"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
