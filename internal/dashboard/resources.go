package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mrsumitborade/safe-earth-response/internal/metrics"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
)

type ResourceRequest struct {
	Quantity int    `json:"quantity" validate:"min=1"`
	Location string `json:"location" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=high moderate low"`
}

type RequestResult struct {
	Resource    *models.Resource `json:"resource"`
	Requested   int              `json:"requested"`
	Transferred int              `json:"transferred"`
	Message     string           `json:"message"`
}

func (s *Service) ListResources(ctx context.Context) ([]models.Resource, error) {
	if err := simulation.Sleep(ctx, s.delays.Load); err != nil {
		return nil, err
	}
	return s.repo.ListResources(ctx)
}

// Recommend runs the allocation advisor over the current alerts and
// resources.
func (s *Service) Recommend(ctx context.Context) (string, error) {
	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return "", err
	}
	resources, err := s.repo.ListResources(ctx)
	if err != nil {
		return "", err
	}
	return s.sim.GenerateResourceRecommendation(ctx, alerts, resources)
}

// RequestResource allocates up to req.Quantity units of resource id. The
// transfer is clamped to what is available; the message always echoes the
// requested quantity.
func (s *Service) RequestResource(ctx context.Context, id int, req ResourceRequest) (*RequestResult, error) {
	req.Location = strings.TrimSpace(req.Location)
	req.Priority = strings.ToLower(strings.TrimSpace(req.Priority))
	if err := s.check(req); err != nil {
		return nil, err
	}
	if req.Priority == "" {
		req.Priority = "moderate"
	}

	if _, err := s.repo.GetResource(ctx, id); err != nil {
		return nil, err
	}
	if err := simulation.Sleep(ctx, s.delays.Request); err != nil {
		return nil, err
	}

	res, moved, err := s.repo.TransferResource(ctx, id, req.Quantity)
	if err != nil {
		return nil, err
	}
	metrics.ResourceUnitsAllocated.WithLabelValues(res.Type).Add(float64(moved))

	result := &RequestResult{
		Resource:    res,
		Requested:   req.Quantity,
		Transferred: moved,
		Message:     fmt.Sprintf("Resource request submitted: %d %s for %s", req.Quantity, res.Type, req.Location),
	}
	s.publish(ctx, models.EventResourceAllocated, result)
	return result, nil
}
