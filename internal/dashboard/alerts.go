package dashboard

import (
	"context"
	"slices"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
)

// AlertFilter is the alerts view filter. An empty type set matches every
// type; a zero Severity matches every severity.
type AlertFilter struct {
	types    map[models.DisasterType]struct{}
	Severity models.Severity
}

func NewAlertFilter(types ...models.DisasterType) AlertFilter {
	var f AlertFilter
	for _, t := range types {
		f.Toggle(t)
	}
	return f
}

// Toggle adds t when absent and removes it when present.
func (f *AlertFilter) Toggle(t models.DisasterType) {
	if _, ok := f.types[t]; ok {
		delete(f.types, t)
		return
	}
	if f.types == nil {
		f.types = make(map[models.DisasterType]struct{})
	}
	f.types[t] = struct{}{}
}

func (f *AlertFilter) Clear() {
	f.types = nil
	f.Severity = ""
}

func (f AlertFilter) Has(t models.DisasterType) bool {
	_, ok := f.types[t]
	return ok
}

// Types returns the selected types in canonical order.
func (f AlertFilter) Types() []models.DisasterType {
	var out []models.DisasterType
	for _, t := range models.DisasterTypes {
		if f.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f AlertFilter) Apply(alerts []models.Alert) []models.Alert {
	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if len(f.types) > 0 && !f.Has(a.Type) {
			continue
		}
		if f.Severity != "" && a.Severity != f.Severity {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Service) ListAlerts(ctx context.Context, filter AlertFilter) ([]models.Alert, error) {
	if err := simulation.Sleep(ctx, s.delays.Load); err != nil {
		return nil, err
	}
	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(alerts), nil
}

// MapData is everything the map view plots.
type MapData struct {
	Alerts    []models.Alert
	Incidents []models.Incident
}

// MapLayers loads filtered alerts and all incidents behind a single load delay.
func (s *Service) MapLayers(ctx context.Context, filter AlertFilter) (*MapData, error) {
	if err := simulation.Sleep(ctx, s.delays.Load); err != nil {
		return nil, err
	}
	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	incidents, err := s.repo.ListIncidents(ctx)
	if err != nil {
		return nil, err
	}
	return &MapData{Alerts: filter.Apply(alerts), Incidents: incidents}, nil
}

// RecentAlerts returns at most n alerts, newest first.
func (s *Service) RecentAlerts(ctx context.Context, n int) ([]models.Alert, error) {
	alerts, err := s.ListAlerts(ctx, AlertFilter{})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(alerts, func(a, b models.Alert) int {
		return b.Time.Time().Compare(a.Time.Time())
	})
	if n >= 0 && n < len(alerts) {
		alerts = alerts[:n]
	}
	return alerts, nil
}

func (s *Service) GetAlert(ctx context.Context, id int) (*models.Alert, error) {
	return s.repo.GetAlert(ctx, id)
}

type GenerateAlertRequest struct {
	Type     string `json:"type" validate:"required"`
	Location string `json:"location" validate:"required"`
	Severity string `json:"severity" validate:"required,oneof=High Moderate Low"`
}

// GenerateAlert produces a simulated alert and broadcasts it. Generated
// alerts are not added to the alert list.
func (s *Service) GenerateAlert(ctx context.Context, req GenerateAlertRequest) (*models.Alert, error) {
	if sev, ok := models.ParseSeverity(req.Severity); ok {
		req.Severity = string(sev)
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	t, ok := models.ParseDisasterType(req.Type)
	if !ok {
		return nil, fieldError("type", "oneof")
	}

	alert, err := s.sim.GenerateAlert(ctx, t, req.Location, models.Severity(req.Severity))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.EventAlertGenerated, alert)
	return alert, nil
}
