package repository

import (
	"context"
	"errors"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

var ErrNotFound = errors.New("not found")

// Repository is the dashboard's working set. Implementations must be safe for
// concurrent use and must not hand out memory they keep.
type Repository interface {
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	GetAlert(ctx context.Context, id int) (*models.Alert, error)

	ListResources(ctx context.Context) ([]models.Resource, error)
	GetResource(ctx context.Context, id int) (*models.Resource, error)
	// TransferResource moves min(quantity, available) units from available to
	// allocated and returns the updated resource with the moved amount.
	TransferResource(ctx context.Context, id int, quantity int) (*models.Resource, int, error)

	ListIncidents(ctx context.Context) ([]models.Incident, error)
	// AddIncident assigns inc.ID and appends it.
	AddIncident(ctx context.Context, inc *models.Incident) error

	ListInsights(ctx context.Context) ([]models.AIInsight, error)
	// PrependInsight assigns in.ID and puts it first.
	PrependInsight(ctx context.Context, in *models.AIInsight) error

	// Reset discards every change since construction.
	Reset(ctx context.Context) error
}

// SettingsRepository is a durable string key-value store.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	PutSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}
