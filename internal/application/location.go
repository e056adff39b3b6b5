package app

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
	"flood-report-bot/internal/metrics"
)

// DefaultLocationTimeout предельное время ожидания координат
const DefaultLocationTimeout = 10 * time.Second

// LocationService одиночный запрос координат с таймаутом и разбором ошибок
type LocationService struct {
	timeout time.Duration
}

func NewLocationService(timeout time.Duration) *LocationService {
	if timeout <= 0 {
		timeout = DefaultLocationTimeout
	}
	return &LocationService{timeout: timeout}
}

// Acquire запрашивает свежую точку высокой точности. Повторов нет.
// Ошибка всегда имеет тип *entity.LocationError.
func (s *LocationService) Acquire(ctx context.Context, provider port.LocationProvider) (entity.GeoLocation, error) {
	if provider == nil {
		return s.fail(&entity.LocationError{Code: entity.CodeLocationUnsupported})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := port.PositionOptions{
		HighAccuracy: true,
		Timeout:      s.timeout,
		MaximumAge:   0,
	}

	type result struct {
		loc entity.GeoLocation
		err error
	}
	done := make(chan result, 1)
	go func() {
		loc, err := provider.CurrentPosition(ctx, opts)
		done <- result{loc: loc, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = errors.Wrap(ctx.Err(), "location timeout")
	}

	switch {
	case errors.Is(res.err, port.ErrLocationUnsupported):
		return s.fail(&entity.LocationError{Code: entity.CodeLocationUnsupported, Err: res.err})
	case res.err != nil:
		return s.fail(&entity.LocationError{Code: entity.CodeLocationDeniedOrUnavailable, Err: res.err})
	case !res.loc.Valid():
		return s.fail(&entity.LocationError{
			Code: entity.CodeLocationDeniedOrUnavailable,
			Err:  errors.Errorf("invalid coordinates %v,%v", res.loc.Latitude, res.loc.Longitude),
		})
	}

	metrics.LocationRequestsTotal.WithLabelValues(metrics.ResultLabel("")).Inc()
	return res.loc, nil
}

func (s *LocationService) fail(err *entity.LocationError) (entity.GeoLocation, error) {
	log.WithError(err).Warn("location acquisition failed")
	metrics.LocationRequestsTotal.WithLabelValues(metrics.ResultLabel(string(err.Code))).Inc()
	return entity.GeoLocation{}, err
}
