package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type DisasterType string

const (
	DisasterTypeEarthquake DisasterType = "Earthquake"
	DisasterTypeFlood      DisasterType = "Flood"
	DisasterTypeHurricane  DisasterType = "Hurricane"
	DisasterTypeWildfire   DisasterType = "Wildfire"
	DisasterTypeTornado    DisasterType = "Tornado"
)

// DisasterTypes lists every disaster type in display order.
var DisasterTypes = []DisasterType{
	DisasterTypeEarthquake,
	DisasterTypeFlood,
	DisasterTypeHurricane,
	DisasterTypeWildfire,
	DisasterTypeTornado,
}

func (t DisasterType) IsValid() bool {
	for _, dt := range DisasterTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// ParseDisasterType accepts any casing ("flood", "FLOOD") and returns the
// canonical value. ok is false for unknown types.
func ParseDisasterType(s string) (DisasterType, bool) {
	dt := DisasterType(titleCase(s))
	return dt, dt.IsValid()
}

// Severity is shared by alert severity and incident urgency.
type Severity string

const (
	SeverityHigh     Severity = "High"
	SeverityModerate Severity = "Moderate"
	SeverityLow      Severity = "Low"
)

var Severities = []Severity{SeverityHigh, SeverityModerate, SeverityLow}

func (s Severity) IsValid() bool {
	return s == SeverityHigh || s == SeverityModerate || s == SeverityLow
}

func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(titleCase(s))
	return sev, sev.IsValid()
}

type Alert struct {
	ID          int          `json:"id" yaml:"id"`
	Type        DisasterType `json:"type" yaml:"type"`
	Location    string       `json:"location" yaml:"location"`
	Severity    Severity     `json:"severity" yaml:"severity"`
	Time        Timestamp    `json:"time" yaml:"time"`
	Description string       `json:"description" yaml:"description"`
	Coordinates Coordinates  `json:"coordinates" yaml:"coordinates"`
}

// Coordinates is a [lat, lng] pair.
type Coordinates [2]float64

func (c Coordinates) Latitude() float64  { return c[0] }
func (c Coordinates) Longitude() float64 { return c[1] }

// casers are stateful, so one is built per call
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
