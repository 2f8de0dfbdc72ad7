package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type Point struct {
	Lat float64 `json:"lat" db:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" db:"lon" validate:"gte=-180,lte=180"`
}

// Orb возвращает точку в порядке lon/lat, как ожидает orb
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Area - зона покрытия сервиса или зона travel pattern. Пустая зона ничего не содержит.
type Area struct {
	orb.MultiPolygon
}

func NewArea(polygons ...orb.Polygon) *Area {
	return &Area{MultiPolygon: orb.MultiPolygon(polygons)}
}

// Contains проверяет попадание точки в зону
func (a *Area) Contains(p Point) bool {
	if a == nil || len(a.MultiPolygon) == 0 {
		return false
	}
	return planar.MultiPolygonContains(a.MultiPolygon, p.Orb())
}

// IsEmpty - зона не задана
func (a *Area) IsEmpty() bool {
	return a == nil || len(a.MultiPolygon) == 0
}
