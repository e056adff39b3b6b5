package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" required:"true"`

	// Сервис анализа: gemini, openai или stub
	AnalyzerProvider string        `envconfig:"ANALYZER_PROVIDER" default:"gemini"`
	GeminiAPIKey     string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel      string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	GeminiBaseURL    string        `envconfig:"GEMINI_BASE_URL"`
	OpenAIAPIKey     string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel      string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	AnalysisTimeout  time.Duration `envconfig:"ANALYSIS_TIMEOUT" default:"60s"`
	ReportLanguage   string        `envconfig:"REPORT_LANGUAGE" default:"th"`

	LocationTimeout time.Duration `envconfig:"LOCATION_TIMEOUT" default:"10s"`
	MaxImageBytes   int           `envconfig:"MAX_IMAGE_BYTES" default:"10485760"`
	ImageMaxSide    int           `envconfig:"IMAGE_MAX_SIDE" default:"1600"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	StatusAddr           string        `envconfig:"STATUS_ADDR" default:":8080"`
	SessionIdleTTL       time.Duration `envconfig:"SESSION_IDLE_TTL" default:"24h"`
	SessionSweepSchedule string        `envconfig:"SESSION_SWEEP_SCHEDULE" default:"@every 10m"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}
	c.AnalyzerProvider = strings.ToLower(strings.TrimSpace(c.AnalyzerProvider))

	switch c.AnalyzerProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for gemini provider")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for openai provider")
		}
	case ProviderStub:
	default:
		return errors.Errorf("unknown ANALYZER_PROVIDER %q", c.AnalyzerProvider)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}

	if c.AnalysisTimeout < 0 {
		return errors.New("ANALYSIS_TIMEOUT must not be negative")
	}
	if c.LocationTimeout <= 0 {
		return errors.New("LOCATION_TIMEOUT must be positive")
	}
	if c.MaxImageBytes <= 0 {
		return errors.New("MAX_IMAGE_BYTES must be positive")
	}
	if c.ImageMaxSide < 0 {
		return errors.New("IMAGE_MAX_SIDE must not be negative")
	}
	if c.SessionIdleTTL <= 0 {
		return errors.New("SESSION_IDLE_TTL must be positive")
	}

	return nil
}
