package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("ANALYZER_PROVIDER", "stub")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, ProviderStub, cfg.AnalyzerProvider)
	require.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	require.Equal(t, 60*time.Second, cfg.AnalysisTimeout)
	require.Equal(t, 10*time.Second, cfg.LocationTimeout)
	require.Equal(t, 10*1024*1024, cfg.MaxImageBytes)
	require.Equal(t, 1600, cfg.ImageMaxSide)
	require.Equal(t, "th", cfg.ReportLanguage)
	require.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
	require.Equal(t, "@every 10m", cfg.SessionSweepSchedule)
}

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("ANALYZER_PROVIDER", "stub")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			TelegramToken:    "token",
			AnalyzerProvider: "Gemini",
			GeminiAPIKey:     "key",
			LogFormat:        "text",
			LocationTimeout:  time.Second,
			MaxImageBytes:    1,
			SessionIdleTTL:   time.Hour,
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ProviderGemini, cfg.AnalyzerProvider)

	cfg = valid()
	cfg.GeminiAPIKey = ""
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.AnalyzerProvider = "openai"
	require.Error(t, cfg.Validate())
	cfg.OpenAIAPIKey = "key"
	require.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.AnalyzerProvider = "claude"
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.LogFormat = "xml"
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.MaxImageBytes = 0
	require.Error(t, cfg.Validate())
}
