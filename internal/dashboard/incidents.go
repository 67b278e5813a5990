package dashboard

import (
	"context"
	"strings"

	"github.com/Mrsumitborade/safe-earth-response/internal/logging"
	"github.com/Mrsumitborade/safe-earth-response/internal/metrics"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
)

// IncidentInput is a citizen report. Urgency matching is case-insensitive.
type IncidentInput struct {
	Location     string              `json:"location" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	Urgency      string              `json:"urgency" validate:"required,oneof=High Moderate Low"`
	ContactName  string              `json:"contact_name"`
	ContactPhone string              `json:"contact_phone"`
	Coordinates  *models.Coordinates `json:"coordinates"`
}

func (s *Service) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	if err := simulation.Sleep(ctx, s.delays.Load); err != nil {
		return nil, err
	}
	return s.repo.ListIncidents(ctx)
}

// ReportIncident validates in and appends it with status New. Nothing is
// stored when validation fails or ctx ends during the report delay.
func (s *Service) ReportIncident(ctx context.Context, in IncidentInput) (*models.Incident, error) {
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	in.Urgency = strings.TrimSpace(in.Urgency)
	if sev, ok := models.ParseSeverity(in.Urgency); ok {
		in.Urgency = string(sev)
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	if err := simulation.Sleep(ctx, s.delays.Report); err != nil {
		return nil, err
	}

	inc := &models.Incident{
		Location:     in.Location,
		Description:  in.Description,
		Urgency:      models.Severity(in.Urgency),
		Time:         models.NewTimestamp(s.now()),
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Status:       models.IncidentStatusNew,
	}
	if in.Coordinates != nil {
		c := *in.Coordinates
		inc.Coordinates = &c
	}
	if err := s.repo.AddIncident(ctx, inc); err != nil {
		return nil, err
	}

	metrics.IncidentsReported.WithLabelValues(string(inc.Urgency)).Inc()
	logging.FromContext(ctx).Info("incident reported", "id", inc.ID, "urgency", inc.Urgency, "location", inc.Location)
	s.publish(ctx, models.EventIncidentReported, inc)
	return inc, nil
}
