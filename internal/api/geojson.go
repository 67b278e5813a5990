package api

import (
	"strings"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func point(c models.Coordinates) Geometry {
	// GeoJSON positions are [lng, lat].
	return Geometry{
		Type:        "Point",
		Coordinates: []float64{c.Longitude(), c.Latitude()},
	}
}

// toGeoJSON maps alerts and located incidents; incidents without coordinates
// are skipped.
func toGeoJSON(alerts []models.Alert, incidents []models.Incident) FeatureCollection {
	features := make([]Feature, 0, len(alerts)+len(incidents))

	for _, a := range alerts {
		features = append(features, Feature{
			Type:     "Feature",
			Geometry: point(a.Coordinates),
			Properties: map[string]any{
				"kind":        "alert",
				"id":          a.ID,
				"type":        strings.ToLower(string(a.Type)),
				"severity":    a.Severity,
				"location":    a.Location,
				"description": a.Description,
				"time":        a.Time,
			},
		})
	}

	for _, inc := range incidents {
		if inc.Coordinates == nil {
			continue
		}
		features = append(features, Feature{
			Type:     "Feature",
			Geometry: point(*inc.Coordinates),
			Properties: map[string]any{
				"kind":        "incident",
				"id":          inc.ID,
				"urgency":     inc.Urgency,
				"status":      inc.Status,
				"location":    inc.Location,
				"description": inc.Description,
				"time":        inc.Time,
			},
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
