package location

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/rwcarlsen/goexif/exif"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
)

// PhotoFix читает GPS-координаты из EXIF исходного файла.
// У сжатых Telegram фото EXIF нет, координаты бывают только у файлов-документов.
func PhotoFix(data []byte) (entity.GeoLocation, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return entity.GeoLocation{}, errors.Wrap(port.ErrPositionUnavailable, err.Error())
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		return entity.GeoLocation{}, errors.Wrap(port.ErrPositionUnavailable, err.Error())
	}

	fix := entity.GeoLocation{Latitude: lat, Longitude: lon}
	if !fix.Valid() {
		return entity.GeoLocation{}, errors.Wrap(port.ErrPositionUnavailable, "exif coordinates out of range")
	}
	return fix, nil
}
