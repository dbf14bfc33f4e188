package repos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

type UserRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreateUser() {
	user := &models.User{Name: "Ann", Email: " Ann@Example.com ", Role: models.UserRoleEditor}
	s.Require().NoError(s.userRepo.Create(s.ctx, user))
	s.NotEmpty(user.ID)
	s.Equal("ann@example.com", user.Email)

	duplicate := &models.User{Name: "Other", Email: "ANN@example.com"}
	err := s.userRepo.Create(s.ctx, duplicate)
	s.ErrorIs(err, ErrEmailExists)
}

func (s *UserRepositoryTestSuite) TestEmailStaysTakenAfterDelete() {
	user := &models.User{Name: "Ann", Email: "ann@example.com"}
	s.Require().NoError(s.userRepo.Create(s.ctx, user))
	s.Require().NoError(s.userRepo.Delete(s.ctx, user.ID))

	err := s.userRepo.Create(s.ctx, &models.User{Name: "Ann 2", Email: "ann@example.com"})
	s.ErrorIs(err, ErrEmailExists)
}

func (s *UserRepositoryTestSuite) TestGetByEmail() {
	user := &models.User{
		Name:         "Ann",
		Email:        "ann@example.com",
		Role:         models.UserRoleAdmin,
		AccessScopes: []string{"clients:write"},
	}
	s.Require().NoError(s.userRepo.Create(s.ctx, user))

	got, err := s.userRepo.GetByEmail(s.ctx, "ANN@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal(models.UserRoleAdmin, got.Role)
	s.Equal([]string{"clients:write"}, got.AccessScopes)

	_, err = s.userRepo.GetByEmail(s.ctx, "nobody@example.com")
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}
