package risk

import (
	"context"
	"time"

	"sentinel/internal/models"
)

// Model scores a risk context. Implementations may call out to an external
// risk service; StaticModel is the built-in placeholder.
type Model interface {
	Score(ctx context.Context, rc models.RiskContext) (*models.RiskAssessment, error)
}

// Cache is satisfied by *cache.CacheService.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
