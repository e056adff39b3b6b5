package app

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
	"flood-report-bot/internal/metrics"
)

// ErrStaleAnalysis результат пришёл для отчёта, который уже заменён
var ErrStaleAnalysis = errors.New("analysis result belongs to a replaced report")

// AnalysisOutcome итог фонового анализа. Report снимок после перехода.
type AnalysisOutcome struct {
	Report entity.Report
	Err    error
}

// ReportService управляет сессиями отчётов. Все изменения идут через один мьютекс,
// поэтому переходы состояний не пересекаются.
type ReportService struct {
	repo      port.ReportRepository
	analyzer  port.Analyzer
	locations *LocationService
	intake    *ImageIntake
	sink      port.ReportSink

	mu  sync.Mutex
	now func() time.Time
}

func NewReportService(
	repo port.ReportRepository,
	analyzer port.Analyzer,
	locations *LocationService,
	intake *ImageIntake,
	sink port.ReportSink,
) *ReportService {
	if locations == nil {
		locations = NewLocationService(DefaultLocationTimeout)
	}
	if intake == nil {
		intake = NewImageIntake(nil, DefaultMaxImageBytes)
	}
	return &ReportService{
		repo:      repo,
		analyzer:  analyzer,
		locations: locations,
		intake:    intake,
		sink:      sink,
		now:       time.Now,
	}
}

// Snapshot возвращает копию текущего отчёта чата
func (s *ReportService) Snapshot(ctx context.Context, chatID int64) (entity.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return entity.Report{}, errors.Wrap(err, "get report")
	}
	return *report, nil
}

// SelectImage проверяет файл и прикрепляет его к черновику.
// Отклонённый файл оставляет код ошибки в отчёте.
func (s *ReportService) SelectImage(ctx context.Context, chatID int64, data []byte) (entity.Report, error) {
	current, err := s.Snapshot(ctx, chatID)
	if err != nil {
		return entity.Report{}, err
	}
	if current.Status != entity.StatusDraft {
		return current, entity.ErrInvalidTransition
	}

	payload, acceptErr := s.intake.Accept(ctx, data)
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		if acceptErr != nil {
			if err := r.RejectImage(entity.CodeOf(acceptErr)); err != nil {
				return err
			}
			return acceptErr
		}
		return r.SelectImage(payload)
	})
}

// RemoveImage убирает фото из черновика
func (s *ReportService) RemoveImage(ctx context.Context, chatID int64) (entity.Report, error) {
	return s.mutate(ctx, chatID, (*entity.Report).RemoveImage)
}

// AcquireLocation запрашивает координаты у провайдера. Ожидание идёт без блокировки,
// результат применяется только если отчёт всё ещё принимает координаты.
func (s *ReportService) AcquireLocation(ctx context.Context, chatID int64, provider port.LocationProvider) (entity.Report, error) {
	current, err := s.Snapshot(ctx, chatID)
	if err != nil {
		return entity.Report{}, err
	}
	if !current.CanChangeLocation() {
		return current, entity.ErrInvalidTransition
	}

	loc, locErr := s.locations.Acquire(ctx, provider)
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		if r.ID != current.ID {
			return entity.ErrInvalidTransition
		}
		if locErr != nil {
			if err := r.FailLocation(entity.CodeOf(locErr)); err != nil {
				return err
			}
			return locErr
		}
		return r.SetLocation(loc)
	})
}

// ClearLocation сбрасывает координаты
func (s *ReportService) ClearLocation(ctx context.Context, chatID int64) (entity.Report, error) {
	return s.mutate(ctx, chatID, (*entity.Report).ClearLocation)
}

// StartAnalysis переводит черновик в анализ и запускает запрос в фоне.
// Канал получает ровно один итог и закрывается. Отмена ctx не прерывает уже начатый запрос.
func (s *ReportService) StartAnalysis(ctx context.Context, chatID int64, allowMissingLocation bool) (entity.Report, <-chan AnalysisOutcome, error) {
	started, err := s.mutate(ctx, chatID, func(r *entity.Report) error {
		return r.BeginAnalysis(allowMissingLocation)
	})
	if err != nil {
		return started, nil, err
	}

	out := make(chan AnalysisOutcome, 1)
	go func() {
		defer close(out)
		out <- s.runAnalysis(context.WithoutCancel(ctx), started)
	}()

	return started, out, nil
}

func (s *ReportService) runAnalysis(ctx context.Context, started entity.Report) AnalysisOutcome {
	logger := log.WithFields(log.Fields{
		"chat_id":   started.ChatID,
		"report_id": started.ID,
	})

	begin := time.Now()
	result, analyzeErr := s.analyze(ctx, *started.Image)
	metrics.AnalysisDurationSeconds.Observe(time.Since(begin).Seconds())

	if analyzeErr != nil {
		// Ошибки с кодом уже записаны в лог клиентом анализа
		code := entity.CodeOf(analyzeErr)
		if code == "" {
			logger.WithError(analyzeErr).Warn("analysis failed")
			code = entity.CodeServiceError
			analyzeErr = &entity.AnalysisError{Code: code, Err: analyzeErr}
		}
		metrics.AnalysesTotal.WithLabelValues(metrics.ResultLabel(string(code))).Inc()
	} else {
		metrics.AnalysesTotal.WithLabelValues(metrics.ResultLabel("")).Inc()
	}

	report, err := s.mutate(ctx, started.ChatID, func(r *entity.Report) error {
		if r.ID != started.ID || r.Status != entity.StatusAnalyzing {
			return ErrStaleAnalysis
		}
		if analyzeErr != nil {
			if err := r.FailAnalysis(entity.CodeOf(analyzeErr)); err != nil {
				return err
			}
			return analyzeErr
		}
		return r.CompleteAnalysis(*result)
	})
	if errors.Is(err, ErrStaleAnalysis) {
		logger.Warn("discarding stale analysis result")
	}

	return AnalysisOutcome{Report: report, Err: err}
}

func (s *ReportService) analyze(ctx context.Context, image entity.ImagePayload) (*entity.AnalysisResult, error) {
	if s.analyzer == nil {
		return nil, &entity.AnalysisError{Code: entity.CodeServiceError, Err: errors.New("analyzer is not configured")}
	}
	result, err := s.analyzer.Analyze(ctx, image)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, &entity.AnalysisError{Code: entity.CodeEmptyResponse}
	}
	return result, nil
}

// AdjustPeopleCount меняет число людей на delta
func (s *ReportService) AdjustPeopleCount(ctx context.Context, chatID int64, delta int) (entity.Report, error) {
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		return r.AdjustPeopleCount(delta)
	})
}

// AdjustAnimalCount меняет число животных на delta
func (s *ReportService) AdjustAnimalCount(ctx context.Context, chatID int64, delta int) (entity.Report, error) {
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		return r.AdjustAnimalCount(delta)
	})
}

// SetPeopleCount задаёт число людей из текста пользователя
func (s *ReportService) SetPeopleCount(ctx context.Context, chatID int64, input string) (entity.Report, error) {
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		return r.SetPeopleCount(input)
	})
}

// SetAnimalCount задаёт число животных из текста пользователя
func (s *ReportService) SetAnimalCount(ctx context.Context, chatID int64, input string) (entity.Report, error) {
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		return r.SetAnimalCount(input)
	})
}

// SetUserNote сохраняет комментарий
func (s *ReportService) SetUserNote(ctx context.Context, chatID int64, text string) (entity.Report, error) {
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		return r.SetUserNote(text)
	})
}

// Submit передаёт отчёт в sink. При ошибке отчёт остаётся в подтверждении.
func (s *ReportService) Submit(ctx context.Context, chatID int64) (entity.Report, error) {
	return s.mutate(ctx, chatID, func(r *entity.Report) error {
		now := s.now()
		submission, err := r.Submission(now)
		if err != nil {
			return err
		}

		if s.sink != nil {
			if err := s.sink.Submit(ctx, submission); err != nil {
				metrics.SubmissionsTotal.WithLabelValues(string(entity.CodeSubmitFailed)).Inc()
				log.WithError(err).WithField("report_id", r.ID).Error("report submission failed")
				if failErr := r.FailSubmit(); failErr != nil {
					return failErr
				}
				return errors.Wrap(err, "submit report")
			}
		}

		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultLabel("")).Inc()
		return r.MarkSubmitted(now)
	})
}

// Reset начинает новый черновик
func (s *ReportService) Reset(ctx context.Context, chatID int64) (entity.Report, error) {
	return s.mutate(ctx, chatID, (*entity.Report).Reset)
}

// EvictIdle удаляет отчёты, не менявшиеся дольше ttl
func (s *ReportService) EvictIdle(ctx context.Context, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted, err := s.repo.EvictIdle(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, errors.Wrap(err, "evict idle reports")
	}
	metrics.EvictedSessionsTotal.Add(float64(evicted))
	s.updateActiveSessions(ctx)

	return evicted, nil
}

// mutate применяет fn к отчёту под блокировкой. Отчёт сохраняется и при ошибке fn.
func (s *ReportService) mutate(ctx context.Context, chatID int64, fn func(*entity.Report) error) (entity.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return entity.Report{}, errors.Wrap(err, "get report")
	}

	fnErr := fn(report)
	if err := s.repo.Save(ctx, report); err != nil {
		return *report, errors.Wrap(err, "save report")
	}
	s.updateActiveSessions(ctx)

	return *report, fnErr
}

func (s *ReportService) updateActiveSessions(ctx context.Context) {
	if n, err := s.repo.Count(ctx); err == nil {
		metrics.ActiveSessions.Set(float64(n))
	}
}
