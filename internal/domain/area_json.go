package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MarshalJSON пишет зону как GeoJSON MultiPolygon
func (a Area) MarshalJSON() ([]byte, error) {
	if len(a.MultiPolygon) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(geojson.NewGeometry(a.MultiPolygon))
}

// UnmarshalJSON принимает GeoJSON Polygon или MultiPolygon
func (a *Area) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		a.MultiPolygon = nil
		return nil
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return fmt.Errorf("invalid area geojson: %w", err)
	}
	switch geom := g.Geometry().(type) {
	case orb.Polygon:
		a.MultiPolygon = orb.MultiPolygon{geom}
	case orb.MultiPolygon:
		a.MultiPolygon = geom
	default:
		return fmt.Errorf("unsupported area geometry %q", g.Type)
	}
	return nil
}

// Scan читает GeoJSON из text/jsonb колонки
func (a *Area) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		a.MultiPolygon = nil
		return nil
	case []byte:
		return a.UnmarshalJSON(v)
	case string:
		return a.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("cannot scan %T into Area", src)
}

func (a *Area) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	b, err := a.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
