package dashboard

import (
	"context"

	"github.com/Mrsumitborade/safe-earth-response/internal/metrics"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
)

func (s *Service) ListInsights(ctx context.Context) ([]models.AIInsight, error) {
	if err := simulation.Sleep(ctx, s.delays.Load); err != nil {
		return nil, err
	}
	return s.repo.ListInsights(ctx)
}

// GenerateInsight analyses the current incidents and puts the result at the
// top of the insight list.
func (s *Service) GenerateInsight(ctx context.Context) (*models.AIInsight, error) {
	incidents, err := s.repo.ListIncidents(ctx)
	if err != nil {
		return nil, err
	}
	insight, err := s.sim.AnalyzeIncidentPriorities(ctx, incidents)
	if err != nil {
		return nil, err
	}
	if err := s.repo.PrependInsight(ctx, insight); err != nil {
		return nil, err
	}

	metrics.InsightsGenerated.WithLabelValues(string(insight.RelatedTo)).Inc()
	s.publish(ctx, models.EventInsightGenerated, insight)
	return insight, nil
}
