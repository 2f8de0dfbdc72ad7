package domain

import "github.com/paulmach/orb"

// square строит квадратную зону по центру и полуширине в градусах
func square(lat, lon, half float64) *Area {
	ring := orb.Ring{
		{lon - half, lat - half},
		{lon + half, lat - half},
		{lon + half, lat + half},
		{lon - half, lat + half},
		{lon - half, lat - half},
	}
	return NewArea(orb.Polygon{ring})
}

func strPtr(s string) *string {
	return &s
}
