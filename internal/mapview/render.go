package mapview

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Renderer turns a View into bytes for one rendering target. Business
// code builds Views; only the selected renderer knows the target format.
type Renderer interface {
	Render(view View) ([]byte, error)
	ContentType() string
}

// GeoJSON renders the view as a GeoJSON FeatureCollection, the format the
// web map widget consumes.
type GeoJSON struct{}

type geoJSONDoc struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   geoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geoJSONGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"` // [lng,lat] or [][lng,lat]
}

func (GeoJSON) ContentType() string { return "application/geo+json" }

func (GeoJSON) Render(view View) ([]byte, error) {
	doc := geoJSONDoc{Type: "FeatureCollection"}
	for _, m := range view.Markers {
		doc.Features = append(doc.Features, geoJSONFeature{
			Type: "Feature",
			Geometry: geoJSONGeometry{
				Type:        "Point",
				Coordinates: []float64{m.Coordinates.Longitude, m.Coordinates.Latitude},
			},
			Properties: map[string]any{"label": m.Label, "role": string(m.Role)},
		})
	}
	if view.Polyline != nil {
		coords := make([][]float64, len(view.Polyline.Points))
		for i, p := range view.Polyline.Points {
			coords[i] = []float64{p.Longitude, p.Latitude}
		}
		doc.Features = append(doc.Features, geoJSONFeature{
			Type:     "Feature",
			Geometry: geoJSONGeometry{Type: "LineString", Coordinates: coords},
			Properties: map[string]any{
				"stroke":       view.Polyline.StrokeColor,
				"stroke-width": view.Polyline.StrokeWidth,
			},
		})
	}
	return json.Marshal(doc)
}

// StaticURL renders the view as a Google Static Maps URL, the native
// target's no-JS fallback.
type StaticURL struct {
	APIKey string
}

func (StaticURL) ContentType() string { return "text/plain" }

func (r StaticURL) Render(view View) ([]byte, error) {
	q := url.Values{}
	q.Set("center", fmt.Sprintf("%.4f,%.4f", view.Region.Center.Latitude, view.Region.Center.Longitude))
	q.Set("size", "640x640")
	if r.APIKey != "" {
		q.Set("key", r.APIKey)
	}

	for _, m := range view.Markers {
		q.Add("markers", fmt.Sprintf("label:%s|%.4f,%.4f",
			markerLabel(m.Role), m.Coordinates.Latitude, m.Coordinates.Longitude))
	}
	if view.Polyline != nil {
		points := make([]string, len(view.Polyline.Points))
		for i, p := range view.Polyline.Points {
			points[i] = fmt.Sprintf("%.4f,%.4f", p.Latitude, p.Longitude)
		}
		q.Add("path", fmt.Sprintf("color:0x4a89f3|weight:%d|%s",
			view.Polyline.StrokeWidth, strings.Join(points, "|")))
	}

	return []byte("https://maps.googleapis.com/maps/api/staticmap?" + q.Encode()), nil
}

func markerLabel(role MarkerRole) string {
	switch role {
	case RolePickup:
		return "P"
	case RoleDestination:
		return "D"
	default:
		return "C"
	}
}
