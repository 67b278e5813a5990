// Package feed periodically generates simulated alerts so connected
// dashboards see live activity without user input.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Mrsumitborade/safe-earth-response/internal/dashboard"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
	"github.com/Mrsumitborade/safe-earth-response/internal/worker"
)

// AlertGenerator is satisfied by *dashboard.Service.
type AlertGenerator interface {
	GenerateAlert(ctx context.Context, req dashboard.GenerateAlertRequest) (*models.Alert, error)
}

type Config struct {
	Interval   time.Duration
	Workers    int
	BufferSize int
}

type Feed struct {
	cfg       Config
	gen       AlertGenerator
	locations []string
	rng       simulation.Rand
	pool      *worker.Pool[dashboard.GenerateAlertRequest]
	wg        sync.WaitGroup
}

// New returns a feed drawing locations from the given list, typically the
// fixture alert locations.
func New(cfg Config, gen AlertGenerator, locations []string, rng simulation.Rand) *Feed {
	if rng == nil {
		rng = simulation.NewRand(0)
	}
	return &Feed{
		cfg:       cfg,
		gen:       gen,
		locations: locations,
		rng:       rng,
	}
}

func (f *Feed) Start(ctx context.Context) {
	processor := func(ctx context.Context, req dashboard.GenerateAlertRequest) error {
		alert, err := f.gen.GenerateAlert(ctx, req)
		if err != nil {
			return err
		}
		slog.Info("generated alert", "id", alert.ID, "type", alert.Type, "location", alert.Location, "severity", alert.Severity)
		return nil
	}

	f.pool = worker.NewPool("feed", f.cfg.Workers, f.cfg.BufferSize, processor)
	f.pool.Start(ctx)

	f.wg.Add(1)
	go f.run(ctx)
}

func (f *Feed) run(ctx context.Context) {
	defer f.wg.Done()
	slog.Info("starting alert feed", "interval", f.cfg.Interval, "locations", len(f.locations))

	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("alert feed shutting down")
			return
		case <-ticker.C:
			f.tick(ctx)
		}
	}
}

func (f *Feed) tick(ctx context.Context) {
	req := f.next()
	if err := f.pool.Submit(ctx, req); err != nil {
		slog.Debug("feed tick skipped", "error", err)
	}
}

func (f *Feed) next() dashboard.GenerateAlertRequest {
	location := "Unknown location"
	if len(f.locations) > 0 {
		location = f.locations[f.rng.IntN(len(f.locations))]
	}
	return dashboard.GenerateAlertRequest{
		Type:     string(models.DisasterTypes[f.rng.IntN(len(models.DisasterTypes))]),
		Location: location,
		Severity: string(models.Severities[f.rng.IntN(len(models.Severities))]),
	}
}

// Stop waits for the ticker loop to exit, then drains queued generations.
// Cancel the context passed to Start first.
func (f *Feed) Stop() {
	f.wg.Wait()
	f.pool.Stop()
	slog.Info("alert feed stopped")
}

// Locations returns the distinct alert locations in order of first use.
func Locations(alerts []models.Alert) []string {
	seen := make(map[string]bool, len(alerts))
	var out []string
	for _, a := range alerts {
		if !seen[a.Location] {
			seen[a.Location] = true
			out = append(out, a.Location)
		}
	}
	return out
}
