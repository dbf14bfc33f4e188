package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// ErrVersionConflict is returned when a config was updated concurrently
var ErrVersionConflict = errors.New("config version conflict")

// ConfigRepository handles database operations for versioned configs
type ConfigRepository struct {
	*Repository[models.Config]
	db *gorm.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{
		Repository: NewRepository[models.Config](db, "config", "Client", "Project"),
		db:         db,
	}
}

// UpdateVersioned stores the current body of cfg as a version snapshot and
// saves cfg with its version incremented. cfg.Version must be the version
// that was read; a concurrent update makes it fail with ErrVersionConflict.
func (r *ConfigRepository) UpdateVersioned(ctx context.Context, cfg *models.Config) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Config
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", cfg.ID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("config not found: %w", err)
			}
			return fmt.Errorf("failed to load config: %w", err)
		}
		if current.Version != cfg.Version {
			return ErrVersionConflict
		}

		snapshot := models.ConfigVersion{
			ID:       uuid.NewString(),
			ConfigID: current.ID,
			Version:  current.Version,
			Body:     current.Body,
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return fmt.Errorf("failed to store config version: %w", err)
		}

		cfg.Version = current.Version + 1
		cfg.CreatedAt = current.CreatedAt
		if err := tx.Omit(clause.Associations).Save(cfg).Error; err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		return nil
	})
}

// ListVersions returns the stored snapshots of a config, newest first
func (r *ConfigRepository) ListVersions(ctx context.Context, configID string, limit, offset int) ([]models.ConfigVersion, int64, error) {
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	q := r.db.WithContext(ctx).Model(&models.ConfigVersion{}).Where("config_id = ?", configID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count config versions: %w", err)
	}

	versions := make([]models.ConfigVersion, 0, limit)
	err := r.db.WithContext(ctx).Where("config_id = ?", configID).
		Order("version DESC").Limit(limit).Offset(offset).
		Find(&versions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list config versions: %w", err)
	}
	return versions, total, nil
}
