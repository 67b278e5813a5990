package models

type IncidentStatus string

const (
	IncidentStatusNew        IncidentStatus = "New"
	IncidentStatusInProgress IncidentStatus = "In Progress"
	IncidentStatusResolved   IncidentStatus = "Resolved"
)

type Incident struct {
	ID           int64          `json:"id" yaml:"id"`
	Location     string         `json:"location" yaml:"location"`
	Description  string         `json:"description" yaml:"description"`
	Urgency      Severity       `json:"urgency" yaml:"urgency"`
	Time         Timestamp      `json:"time" yaml:"time"`
	ContactName  string         `json:"contact_name,omitempty" yaml:"contact_name,omitempty"`
	ContactPhone string         `json:"contact_phone,omitempty" yaml:"contact_phone,omitempty"`
	Status       IncidentStatus `json:"status" yaml:"status"`
	Coordinates  *Coordinates   `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// Clone returns a copy that shares no memory with i.
func (i Incident) Clone() Incident {
	if i.Coordinates != nil {
		c := *i.Coordinates
		i.Coordinates = &c
	}
	return i
}
