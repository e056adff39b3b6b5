package entity

import "math"

// GeoLocation координаты, полученные от провайдера геолокации
type GeoLocation struct {
	Latitude  float64 // широта в градусах
	Longitude float64 // долгота в градусах
	Accuracy  float64 // радиус точности в метрах
}

// Valid проверяет, что координаты лежат в допустимых пределах
func (g GeoLocation) Valid() bool {
	for _, v := range []float64{g.Latitude, g.Longitude, g.Accuracy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(g.Latitude) <= 90 && math.Abs(g.Longitude) <= 180 && g.Accuracy >= 0
}
