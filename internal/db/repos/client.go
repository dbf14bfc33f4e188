package repos

import (
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// ClientRepository handles database operations for clients
type ClientRepository struct {
	*Repository[models.Client]
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{Repository: NewRepository[models.Client](db, "client")}
}
