package scheduler

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Evictor удаляет неактивные сессии
type Evictor interface {
	EvictIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// Sweeper периодически удаляет отчёты, брошенные пользователями
type Sweeper struct {
	cron    *cron.Cron
	evictor Evictor
	ttl     time.Duration
}

// NewSweeper регистрирует задачу очистки по расписанию cron (например "@every 10m")
func NewSweeper(schedule string, evictor Evictor, ttl time.Duration) (*Sweeper, error) {
	s := &Sweeper{
		cron:    cron.New(),
		evictor: evictor,
		ttl:     ttl,
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return nil, errors.Wrapf(err, "schedule session sweep %q", schedule)
	}

	return s, nil
}

// Start запускает расписание в фоне
func (s *Sweeper) Start() {
	log.WithField("ttl", s.ttl).Info("session sweeper started")
	s.cron.Start()
}

// Stop останавливает расписание и ждёт текущую задачу
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep выполняет одну очистку
func (s *Sweeper) Sweep(ctx context.Context) int {
	evicted, err := s.evictor.EvictIdle(ctx, s.ttl)
	if err != nil {
		log.WithError(err).Error("session sweep failed")
		return 0
	}
	if evicted > 0 {
		log.WithField("evicted", evicted).Info("idle sessions evicted")
	}
	return evicted
}
