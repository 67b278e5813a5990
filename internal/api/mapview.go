package api

import (
	"fmt"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

const mapPreviewSize = 3

// Marker places an alert on the placeholder map, in percent of the map box.
type Marker struct {
	AlertID  int             `json:"alert_id"`
	Top      int             `json:"top"`
	Left     int             `json:"left"`
	Severity models.Severity `json:"severity"`
}

type MapView struct {
	Count   int      `json:"count"`
	Preview []string `json:"preview"`
	More    int      `json:"more"`
	Markers []Marker `json:"markers"`
}

// buildMapView lays markers on a fixed index-based grid; positions carry no
// geographic meaning.
func buildMapView(alerts []models.Alert) MapView {
	view := MapView{
		Count:   len(alerts),
		Preview: make([]string, 0, mapPreviewSize),
		Markers: make([]Marker, 0, len(alerts)),
	}

	for i, a := range alerts {
		if i < mapPreviewSize {
			view.Preview = append(view.Preview, fmt.Sprintf("%s in %s", a.Type, a.Location))
		}
		view.Markers = append(view.Markers, Marker{
			AlertID:  a.ID,
			Top:      20 + (i*15)%60,
			Left:     15 + (i*17)%70,
			Severity: a.Severity,
		})
	}
	view.More = max(0, len(alerts)-mapPreviewSize)

	return view
}
