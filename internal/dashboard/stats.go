package dashboard

import (
	"context"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

// Stats backs the home page summary cards.
type Stats struct {
	TotalAlerts        int                     `json:"total_alerts"`
	HighSeverityAlerts int                     `json:"high_severity_alerts"`
	AvailableResources int                     `json:"available_resources"`
	AllocatedResources int                     `json:"allocated_resources"`
	TotalIncidents     int                     `json:"total_incidents"`
	IncidentsByUrgency map[models.Severity]int `json:"incidents_by_urgency"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	resources, err := s.repo.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	incidents, err := s.repo.ListIncidents(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		TotalAlerts:        len(alerts),
		TotalIncidents:     len(incidents),
		IncidentsByUrgency: make(map[models.Severity]int, len(models.Severities)),
	}
	for _, sev := range models.Severities {
		st.IncidentsByUrgency[sev] = 0
	}
	for _, a := range alerts {
		if a.Severity == models.SeverityHigh {
			st.HighSeverityAlerts++
		}
	}
	for _, r := range resources {
		st.AvailableResources += r.Available
		st.AllocatedResources += r.Allocated
	}
	for _, inc := range incidents {
		st.IncidentsByUrgency[inc.Urgency]++
	}
	return st, nil
}
