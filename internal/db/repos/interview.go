package repos

import (
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// InterviewRepository handles database operations for interviews
type InterviewRepository struct {
	*Repository[models.Interview]
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{Repository: NewRepository[models.Interview](db, "interview", "Client", "Project")}
}
