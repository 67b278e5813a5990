// Package simulation produces the dashboard's "AI" output: generated alerts,
// resource recommendations and incident priority analyses. Every operation
// waits out an artificial processing delay first.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

const DefaultDelay = 1500 * time.Millisecond

const (
	NoCriticalAllocations  = "No critical resource allocations needed at this time."
	NoResourcesAvailable   = "No resources available for allocation at this time."
	NoHighPriorityIncident = "No high priority incidents to report at this time."
)

var ErrUnknownType = errors.New("unknown disaster type")

var alertDescriptions = map[models.DisasterType][]string{
	models.DisasterTypeEarthquake: {
		"Seismic activity detected. Potential for structural damage.",
		"Magnitude assessment in progress. Expect aftershocks.",
		"Ground movement detected. Evaluating impact on infrastructure.",
	},
	models.DisasterTypeFlood: {
		"Rising water levels detected. Low-lying areas at risk.",
		"Heavy rainfall causing rapid water accumulation.",
		"Potential for flash flooding in affected areas.",
	},
	models.DisasterTypeHurricane: {
		"Strong winds and heavy rain approaching. Secure loose objects.",
		"Storm system intensifying. Monitoring trajectory.",
		"Coastal areas at risk. Evacuation may be necessary.",
	},
	models.DisasterTypeWildfire: {
		"Fire spreading rapidly due to dry conditions and winds.",
		"Smoke detected in region. Air quality deteriorating.",
		"Vegetation fire with potential to spread to populated areas.",
	},
	models.DisasterTypeTornado: {
		"Rotation detected in storm system. Seeking shelter advised.",
		"Weather conditions favorable for tornado development.",
		"Wind patterns indicate potential for funnel formation.",
	},
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Simulator struct {
	rng   Rand
	delay time.Duration
	now   func() time.Time
}

type Option func(*Simulator)

func WithDelay(d time.Duration) Option {
	return func(s *Simulator) { s.delay = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

func New(rng Rand, opts ...Option) *Simulator {
	if rng == nil {
		rng = NewRand(0)
	}
	s := &Simulator{
		rng:   rng,
		delay: DefaultDelay,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SimulateProcessing waits out the configured delay.
func (s *Simulator) SimulateProcessing(ctx context.Context) error {
	return Sleep(ctx, s.delay)
}

func (s *Simulator) GenerateAlert(ctx context.Context, t models.DisasterType, location string, severity models.Severity) (*models.Alert, error) {
	descriptions, ok := alertDescriptions[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if err := s.SimulateProcessing(ctx); err != nil {
		return nil, err
	}

	return &models.Alert{
		ID:          s.rng.IntN(10000),
		Type:        t,
		Location:    location,
		Severity:    severity,
		Time:        models.NewTimestamp(s.now()),
		Description: descriptions[s.rng.IntN(len(descriptions))],
		Coordinates: models.Coordinates{
			35 + s.rng.Float64()*10,
			-100 + s.rng.Float64()*20,
		},
	}, nil
}

func (s *Simulator) GenerateResourceRecommendation(ctx context.Context, alerts []models.Alert, resources []models.Resource) (string, error) {
	if err := s.SimulateProcessing(ctx); err != nil {
		return "", err
	}

	var high []models.Alert
	for _, a := range alerts {
		if a.Severity == models.SeverityHigh {
			high = append(high, a)
		}
	}
	if len(high) == 0 {
		return NoCriticalAllocations, nil
	}
	if len(resources) == 0 {
		return NoResourcesAvailable, nil
	}

	alert := high[s.rng.IntN(len(high))]
	res := resources[s.rng.IntN(len(resources))]
	qty := max(1, int(math.Floor(float64(res.Available)*0.1)))

	return fmt.Sprintf("RECOMMENDATION: Deploy %d %s to %s to address %s (%s severity).",
		qty, res.Type, alert.Location, strings.ToLower(string(alert.Type)), alert.Severity), nil
}

// AnalyzeIncidentPriorities returns an unsaved Analysis insight; the caller
// assigns its id.
func (s *Simulator) AnalyzeIncidentPriorities(ctx context.Context, incidents []models.Incident) (*models.AIInsight, error) {
	if err := s.SimulateProcessing(ctx); err != nil {
		return nil, err
	}

	var highLocations []string
	moderate := 0
	for _, inc := range incidents {
		switch inc.Urgency {
		case models.SeverityHigh:
			highLocations = append(highLocations, inc.Location)
		case models.SeverityModerate:
			moderate++
		}
	}

	var content string
	switch {
	case len(highLocations) > 0:
		content = fmt.Sprintf("PRIORITY ALERT: %d high urgency incidents require immediate attention in %s.",
			len(highLocations), strings.Join(highLocations, ", "))
	case moderate > 0:
		content = fmt.Sprintf("Current incident distribution: %d moderate urgency incidents being monitored.", moderate)
	default:
		content = NoHighPriorityIncident
	}

	return &models.AIInsight{
		Type:      models.InsightTypeAnalysis,
		Content:   content,
		RelatedTo: models.InsightSubjectIncidents,
		Time:      models.NewTimestamp(s.now()),
	}, nil
}
