package port

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"flood-report-bot/internal/domain/entity"
)

var (
	// ErrLocationUnsupported платформа не умеет определять координаты
	ErrLocationUnsupported = errors.New("location is not supported")
	// ErrPermissionDenied пользователь запретил доступ к координатам
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrPositionUnavailable нет сигнала или свежей точки
	ErrPositionUnavailable = errors.New("position unavailable")
)

// PositionOptions параметры одиночного запроса координат
type PositionOptions struct {
	HighAccuracy bool          // требовать максимальную точность
	Timeout      time.Duration // предельное время ожидания
	MaximumAge   time.Duration // допустимый возраст кэшированной точки, 0 — только свежая
}

// LocationProvider источник координат устройства
type LocationProvider interface {
	// CurrentPosition возвращает одну точку или ошибку
	CurrentPosition(ctx context.Context, opts PositionOptions) (entity.GeoLocation, error)
}
