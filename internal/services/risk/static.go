package risk

import (
	"context"

	"sentinel/internal/models"
)

// StaticModel returns the same medium-risk assessment for every context.
type StaticModel struct{}

func (StaticModel) Score(context.Context, models.RiskContext) (*models.RiskAssessment, error) {
	return &models.RiskAssessment{
		Score: 65,
		Level: models.RiskLevelMedium,
		Factors: []models.RiskFactor{
			{Name: "Market Volatility", Impact: 70},
			{Name: "Social Sentiment", Impact: 50},
			{Name: "Protocol Security", Impact: 75},
		},
	}, nil
}
