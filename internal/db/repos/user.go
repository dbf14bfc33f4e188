package repos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// ErrEmailExists is returned when a user with the same email already exists
var ErrEmailExists = errors.New("email already exists")

// UserRepository handles database operations for user entities
type UserRepository struct {
	*Repository[models.User]
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		Repository: NewRepository[models.User](db, "user"),
		db:         db,
	}
}

// Create creates a new user in the database.
// Returns ErrEmailExists if the email is taken, including by a deleted user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := r.GetByEmail(ctx, user.Email)
	if err == nil {
		return ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking email existence: %w", err)
	}
	return r.Repository.Create(ctx, user)
}

// GetByEmail retrieves a user by their email address
// Returns ErrRecordNotFound if the user doesn't exist
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Unscoped().
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
