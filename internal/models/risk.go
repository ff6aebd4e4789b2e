package models

import "time"

// Risk levels
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// Protection actions recommended per vault.
const (
	ActionExtendTimelock = "extend_timelock"
	ActionMonitor        = "monitor"
	ActionNormal         = "normal"
)

type RiskFactor struct {
	Name   string `json:"name"`
	Impact int    `json:"impact"`
}

// RiskAssessment is what a risk model returns. Score is 0-100.
type RiskAssessment struct {
	Score   int          `json:"score"`
	Level   string       `json:"level"`
	Factors []RiskFactor `json:"factors"`
}

// RiskContext describes what is being scored. Every field is optional.
type RiskContext struct {
	Address string  `json:"address,omitempty"`
	VaultID uint64  `json:"vault_id,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
}

type RiskReport struct {
	RiskScore       *RiskAssessment `json:"risk_score"`
	NeedsProtection bool            `json:"needs_protection"`
	Recommendation  string          `json:"recommendation"`
	Timestamp       time.Time       `json:"timestamp"`
}

type ProtectionAction struct {
	VaultID           interface{} `json:"vault_id"`
	RecommendedAction string      `json:"recommended_action"`
	Confidence        int         `json:"confidence"`
}
