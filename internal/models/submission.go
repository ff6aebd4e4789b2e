package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission statuses. A submitted transaction sits in the node's pool; it is
// not confirmed.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusFailed    = "failed"
)

// Submission is the audit record of one extendUnlockTime attempt.
type Submission struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VaultID        uint64    `gorm:"index;not null" json:"vault_id"`
	AdditionalDays uint64    `gorm:"not null" json:"additional_days"`
	Sender         string    `gorm:"index" json:"sender,omitempty"`
	Nonce          *uint64   `json:"nonce,omitempty"`
	GasPrice       string    `json:"gas_price,omitempty"`
	TxHash         string    `gorm:"index" json:"transaction_hash,omitempty"`
	Status         string    `gorm:"not null;default:'submitted'" json:"status"`
	ErrorKind      string    `json:"error_kind,omitempty"`
	Error          string    `json:"error,omitempty"`
	Metadata       JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
