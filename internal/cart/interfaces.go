package cart

import (
	"context"

	"github.com/angelmondragon/storefront-core/pkg/db/models"
)

// SessionStore persists cart snapshots keyed by session ID. Load returns
// (nil, nil) when the session has no saved cart.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Save(ctx context.Context, sessionID string, snapshot Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}

// PromoSource loads and stores promo codes.
type PromoSource interface {
	LoadPromoTable(ctx context.Context) (*PromoTable, error)
	Create(ctx context.Context, row *models.PromoCode) (*models.PromoCode, error)
}

// MetricsRecorder receives cart mutation and promo outcomes.
type MetricsRecorder interface {
	IncMutation(op string)
	IncPromoResult(result string)
}

type noopMetrics struct{}

func (noopMetrics) IncMutation(string)    {}
func (noopMetrics) IncPromoResult(string) {}
