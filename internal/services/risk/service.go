package risk

import (
	"context"
	"fmt"
	"time"

	"sentinel/internal/models"
	"sentinel/internal/repositories/cache"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	DefaultThreshold = 70
	DefaultCacheTTL  = time.Minute

	extendAbove  = 75
	monitorAbove = 50

	recommendProtect  = "Consider enabling timelock"
	recommendStandard = "Standard transaction ok"
)

type Service struct {
	model     Model
	cache     Cache
	threshold int
	ttl       time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// NewService wires a risk model. cache may be nil.
func NewService(model Model, c Cache, threshold int, log *zap.Logger) *Service {
	if model == nil {
		panic("risk model is required")
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		model:     model,
		cache:     c,
		threshold: threshold,
		ttl:       DefaultCacheTTL,
		now:       time.Now,
		log:       log.Named("risk"),
	}
}

// Assess scores rc and attaches the protection recommendation.
func (s *Service) Assess(ctx context.Context, rc models.RiskContext) (*models.RiskReport, error) {
	key := cache.GenerateKey("risk", rc.Address, rc.VaultID, rc.Amount)
	if s.cache != nil {
		var cached models.RiskReport
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("risk cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	assessment, err := s.model.Score(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("risk model failed: %w", err)
	}

	needsProtection := assessment.Score > s.threshold
	report := &models.RiskReport{
		RiskScore:       assessment,
		NeedsProtection: needsProtection,
		Recommendation:  recommendStandard,
		Timestamp:       s.now().UTC(),
	}
	if needsProtection {
		report.Recommendation = recommendProtect
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, key, report, s.ttl); err != nil {
			s.log.Warn("risk cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return report, nil
}

// SimulateProtection recommends an action per vault for the given risk score.
// Vaults without an "id" are reported as "unknown".
func (s *Service) SimulateProtection(vaults []map[string]interface{}, riskScore int) []models.ProtectionAction {
	action := models.ActionNormal
	switch {
	case riskScore > extendAbove:
		action = models.ActionExtendTimelock
	case riskScore > monitorAbove:
		action = models.ActionMonitor
	}
	confidence := lo.Min([]int{100, riskScore + 20})

	return lo.Map(vaults, func(v map[string]interface{}, _ int) models.ProtectionAction {
		id, ok := v["id"]
		if !ok {
			id = "unknown"
		}
		return models.ProtectionAction{
			VaultID:           id,
			RecommendedAction: action,
			Confidence:        confidence,
		}
	})
}
