package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// StakeholderRepository handles database operations for stakeholders
type StakeholderRepository struct {
	*Repository[models.Stakeholder]
	db *gorm.DB
}

// NewStakeholderRepository creates a new stakeholder repository
func NewStakeholderRepository(db *gorm.DB) *StakeholderRepository {
	return &StakeholderRepository{
		Repository: NewRepository[models.Stakeholder](db, "stakeholder", "Client"),
		db:         db,
	}
}

// ListByClient returns the active stakeholders of a client
func (r *StakeholderRepository) ListByClient(ctx context.Context, clientID string, opts *models.ListOptions) ([]models.Stakeholder, int64, error) {
	return r.List(ctx, scoped(opts, "client_id", clientID))
}

// CountForClient returns how many of ids are active stakeholders of clientID
func (r *StakeholderRepository) CountForClient(ctx context.Context, clientID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Stakeholder{}).
		Where("client_id = ? AND id IN ?", clientID, ids).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count stakeholders: %w", err)
	}
	return n, nil
}
