package repositories

import (
	"context"

	"sentinel/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// SubmissionRepository stores the audit trail of workflow attempts.
type SubmissionRepository interface {
	Create(ctx context.Context, s *models.Submission) error
	ListRecent(ctx context.Context, limit int) ([]models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, s *models.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *submissionRepository) ListRecent(ctx context.Context, limit int) ([]models.Submission, error) {
	var out []models.Submission
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(ClampLimit(limit)).
		Find(&out).Error
	return out, err
}

// ClampLimit bounds a caller supplied page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// NoopSubmissionRepository is used when no database is configured.
type NoopSubmissionRepository struct{}

func (NoopSubmissionRepository) Create(context.Context, *models.Submission) error { return nil }

func (NoopSubmissionRepository) ListRecent(context.Context, int) ([]models.Submission, error) {
	return []models.Submission{}, nil
}
