package location

import (
	"context"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
)

// Fixed отдаёт точку, которую пользователь только что отправил в чат.
// Пересланная точка считается устаревшей.
type Fixed struct {
	Fix       entity.GeoLocation
	Forwarded bool
}

// CurrentPosition возвращает точку или ErrPositionUnavailable для устаревших данных
func (f Fixed) CurrentPosition(ctx context.Context, opts port.PositionOptions) (entity.GeoLocation, error) {
	if err := ctx.Err(); err != nil {
		return entity.GeoLocation{}, err
	}
	if f.Forwarded && opts.MaximumAge == 0 {
		return entity.GeoLocation{}, port.ErrPositionUnavailable
	}
	return f.Fix, nil
}

// Unsupported источник для чатов, где запросить координаты нельзя
type Unsupported struct{}

func (Unsupported) CurrentPosition(ctx context.Context, opts port.PositionOptions) (entity.GeoLocation, error) {
	return entity.GeoLocation{}, port.ErrLocationUnsupported
}

var (
	_ port.LocationProvider = Fixed{}
	_ port.LocationProvider = Unsupported{}
)
