package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
	ProviderNone   = "none"

	AnalysisPrimary   = "primary"
	AnalysisSecondary = "secondary"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	ServiceName string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	OpenAIAPIKey      string
	OpenAIBaseURL     string  `validate:"required,url"`
	OpenAIModel       string  `validate:"required"`
	OpenAITemperature float64 `validate:"gte=0,lte=2"`
	OpenAIMaxTokens   int     `validate:"gte=0"`

	GroqAPIKey  string
	GroqBaseURL string `validate:"required,url"`
	GroqModel   string `validate:"required"`

	GeminiAPIKey string
	GeminiModel  string `validate:"required"`

	PrimaryProvider   string `validate:"oneof=openai groq gemini"`
	SecondaryProvider string `validate:"oneof=openai groq gemini none,nefield=PrimaryProvider"`
	AnalysisProvider  string `validate:"oneof=primary secondary"`
	LLMTimeoutSeconds int    `validate:"gt=0"`

	NewsAPIKey         string
	NewsBaseURL        string `validate:"required,url"`
	NewsTimeoutSeconds int    `validate:"gt=0"`

	MaxUploadBytes      int64 `validate:"gt=0"`
	CORSAllowedOrigins  string
	MaxInFlightRequests int `validate:"gte=0"`

	BreakerEnabled            bool
	BreakerMinRequests        int     `validate:"gte=1"`
	BreakerFailureRatio       float64 `validate:"gt=0,lte=1"`
	BreakerOpenTimeoutSeconds int     `validate:"gt=0"`

	PromptsFile string
}

// Load reads the process environment, falling back to a .env file in the
// working directory for keys the environment leaves unset.
func Load() Config {
	return LoadFrom(".env")
}

func LoadFrom(envFile string) Config {
	env := newEnv(envFile)
	return Config{
		Port:        env.mustEnv("PORT", "5002"),
		ServiceName: env.mustEnv("SERVICE_NAME", "legal-ai-pro-backend"),
		LogLevel:    strings.ToLower(env.mustEnv("LOG_LEVEL", "info")),

		OpenAIAPIKey:      env.mustEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     env.mustEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       env.mustEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITemperature: env.mustEnvFloat("OPENAI_TEMPERATURE", 0.3),
		OpenAIMaxTokens:   env.mustEnvInt("OPENAI_MAX_TOKENS", 600),

		GroqAPIKey:  env.mustEnv("GROQ_API_KEY", ""),
		GroqBaseURL: env.mustEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:   env.mustEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		GeminiAPIKey: env.mustEnv("GEMINI_API_KEY", ""),
		GeminiModel:  env.mustEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		PrimaryProvider:   strings.ToLower(env.mustEnv("PRIMARY_PROVIDER", ProviderOpenAI)),
		SecondaryProvider: strings.ToLower(env.mustEnv("SECONDARY_PROVIDER", ProviderGroq)),
		AnalysisProvider:  strings.ToLower(env.mustEnv("ANALYSIS_PROVIDER", AnalysisPrimary)),
		LLMTimeoutSeconds: env.mustEnvInt("LLM_TIMEOUT_SECONDS", 30),

		NewsAPIKey:         env.mustEnv("NEWS_API_KEY", ""),
		NewsBaseURL:        env.mustEnv("NEWS_BASE_URL", "https://gnews.io/api/v4"),
		NewsTimeoutSeconds: env.mustEnvInt("NEWS_TIMEOUT_SECONDS", 30),

		MaxUploadBytes:      env.mustEnvInt64("MAX_UPLOAD_BYTES", 20<<20),
		CORSAllowedOrigins:  env.mustEnv("CORS_ALLOWED_ORIGINS", "*"),
		MaxInFlightRequests: env.mustEnvInt("MAX_IN_FLIGHT_REQUESTS", 0),

		BreakerEnabled:            env.mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:        env.mustEnvInt("BREAKER_MIN_REQUESTS", 10),
		BreakerFailureRatio:       env.mustEnvFloat("BREAKER_FAILURE_RATIO", 0.5),
		BreakerOpenTimeoutSeconds: env.mustEnvInt("BREAKER_OPEN_TIMEOUT_SECONDS", 30),

		PromptsFile: env.mustEnv("PROMPTS_FILE", ""),
	}
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// APIKeyFor returns the credential of a provider kind, empty when unset.
func (c Config) APIKeyFor(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderGroq:
		return c.GroqAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	default:
		return ""
	}
}

func CredentialName(provider string) string {
	switch provider {
	case ProviderGroq:
		return "GROQ_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func (c Config) PrimaryConfigured() bool {
	return strings.TrimSpace(c.APIKeyFor(c.PrimaryProvider)) != ""
}

func (c Config) SecondaryConfigured() bool {
	if c.SecondaryProvider == ProviderNone {
		return false
	}
	return strings.TrimSpace(c.APIKeyFor(c.SecondaryProvider)) != ""
}

type env struct {
	v *viper.Viper
}

func newEnv(envFile string) env {
	v := viper.New()
	v.AutomaticEnv()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				// A malformed .env file is ignored; the environment still applies.
				v = viper.New()
				v.AutomaticEnv()
			}
		}
	}
	return env{v: v}
}

func (e env) mustEnv(key, fallback string) string {
	v := strings.TrimSpace(e.v.GetString(key))
	if v == "" {
		return fallback
	}
	return v
}

func (e env) mustEnvInt(key string, fallback int) int {
	v := e.mustEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (e env) mustEnvInt64(key string, fallback int64) int64 {
	v := e.mustEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func (e env) mustEnvFloat(key string, fallback float64) float64 {
	v := e.mustEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func (e env) mustEnvBool(key string, fallback bool) bool {
	v := e.mustEnv(key, "")
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
