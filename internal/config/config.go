package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
)

// Config is loaded once at startup and passed into the server constructor;
// nothing reads the environment after this point.
type Config struct {
	Port int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	Provider llm.Provider

	// Requests allowed against the provider; zero disables the bucket.
	ProviderRequestsPerMinute int
	ProviderRequestsPerDay    int
}

// providerDefaults maps each supported provider's env key to its
// OpenAI-compatible endpoint and default model. Order matters: the first
// provider with a configured key wins.
var providerDefaults = []struct {
	name   string
	envKey string
	base   string
	model  string
}{
	{"gemini", "GEMINI_API_KEY", "https://generativelanguage.googleapis.com/v1beta/openai", "gemini-2.0-flash"},
	{"openai", "OPENAI_API_KEY", "", "gpt-4o-mini"},
	{"groq", "GROQ_API_KEY", "https://api.groq.com/openai/v1", "llama-3.3-70b-versatile"},
}

// Load reads the environment into a Config. It fails when no LLM provider
// key is configured, since every gateway endpoint needs one.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := &Config{
		Port:          port,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USERNAME"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_DATABASE", "querycraft"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ProviderRequestsPerMinute: getEnvInt("LLM_REQUESTS_PER_MINUTE", 60),
		ProviderRequestsPerDay:    getEnvInt("LLM_REQUESTS_PER_DAY", 0),
	}

	provider, err := resolveProvider()
	if err != nil {
		return nil, err
	}
	cfg.Provider = provider

	return cfg, nil
}

func resolveProvider() (llm.Provider, error) {
	for _, p := range providerDefaults {
		key := os.Getenv(p.envKey)
		if key == "" {
			continue
		}
		provider := llm.Provider{
			Name:    p.name,
			APIKey:  key,
			BaseURL: p.base,
			Model:   p.model,
		}
		if model := os.Getenv("LLM_MODEL"); model != "" {
			provider.Model = model
		}
		return provider, nil
	}
	return llm.Provider{}, llm.ErrNoProvider
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
