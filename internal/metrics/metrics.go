package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AnalysesTotal считает вызовы анализа по результату (ok или код ошибки)
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "floodreport",
		Subsystem: "analysis",
		Name:      "requests_total",
		Help:      "Total number of image analyses, labeled by result.",
	}, []string{"result"})

	// AnalysisDurationSeconds время одного обращения к сервису анализа
	AnalysisDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "floodreport",
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "Time spent waiting for the image analysis service.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	})

	// LocationRequestsTotal считает запросы координат по результату
	LocationRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "floodreport",
		Subsystem: "location",
		Name:      "requests_total",
		Help:      "Total number of location acquisitions, labeled by result.",
	}, []string{"result"})

	// SubmissionsTotal считает отправленные отчёты по результату
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "floodreport",
		Subsystem: "report",
		Name:      "submissions_total",
		Help:      "Total number of report submissions, labeled by result.",
	}, []string{"result"})

	// ActiveSessions число отчётов в памяти
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "floodreport",
		Subsystem: "report",
		Name:      "active_sessions",
		Help:      "Number of report sessions held in memory.",
	})

	// EvictedSessionsTotal число удалённых по неактивности отчётов
	EvictedSessionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "floodreport",
		Subsystem: "report",
		Name:      "evicted_sessions_total",
		Help:      "Total number of idle report sessions evicted from memory.",
	})
)

// Register регистрирует метрики в реестре Prometheus по умолчанию.
// Повторный вызов безопасен.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AnalysesTotal,
			AnalysisDurationSeconds,
			LocationRequestsTotal,
			SubmissionsTotal,
			ActiveSessions,
			EvictedSessionsTotal,
		)
	})
}

// ResultLabel возвращает метку результата: "ok" или код ошибки
func ResultLabel(code string) string {
	if code == "" {
		return "ok"
	}
	return code
}
