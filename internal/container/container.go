package container

import (
	"github.com/pkg/errors"

	"flood-report-bot/config"
	app "flood-report-bot/internal/application"
	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
	"flood-report-bot/internal/infrastructure/analysis"
	"flood-report-bot/internal/infrastructure/sink"
	"flood-report-bot/internal/infrastructure/storage"
	"flood-report-bot/internal/infrastructure/vision"
)

type Container struct {
	Reports       *app.ReportService
	ReportRepo    port.ReportRepository
	Analyzer      *analysis.Client
	Language      entity.Language
	MaxImageBytes int
}

// New собирает сервисы приложения по конфигурации
func New(cfg *config.Config) (*Container, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	lang := entity.ParseLanguage(cfg.ReportLanguage)
	analyzer := analysis.NewClient(backend, cfg.AnalysisTimeout, lang)
	repo := storage.NewMemoryReportRepository()

	reports := app.NewReportService(
		repo,
		analyzer,
		app.NewLocationService(cfg.LocationTimeout),
		app.NewImageIntake(vision.NewPreparer(cfg.ImageMaxSide), cfg.MaxImageBytes),
		sink.NewLogSink(nil),
	)

	return &Container{
		Reports:       reports,
		ReportRepo:    repo,
		Analyzer:      analyzer,
		Language:      lang,
		MaxImageBytes: cfg.MaxImageBytes,
	}, nil
}

// NewBackend выбирает транспорт к сервису анализа
func NewBackend(cfg *config.Config) (analysis.Backend, error) {
	switch cfg.AnalyzerProvider {
	case config.ProviderGemini:
		return analysis.NewGeminiBackend(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL), nil
	case config.ProviderOpenAI:
		return analysis.NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIModel, ""), nil
	case config.ProviderStub:
		return analysis.NewStubBackend(), nil
	default:
		return nil, errors.Errorf("unknown analyzer provider %q", cfg.AnalyzerProvider)
	}
}
