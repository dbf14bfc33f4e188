package repos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

type RepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestRepository(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) TestListPagination() {
	s.createClients(25)

	opts := &models.ListOptions{Limit: 10, SortColumn: "name", SortDirection: models.SortAsc}
	rows, total, err := s.clientRepo.List(s.ctx, opts)
	s.Require().NoError(err)
	s.Equal(int64(25), total)
	s.Len(rows, 10)
	s.Equal("client-00", rows[0].Name)

	opts.Offset = 20
	rows, total, err = s.clientRepo.List(s.ctx, opts)
	s.Require().NoError(err)
	s.Equal(int64(25), total)
	s.Len(rows, 5)
	s.Equal("client-20", rows[0].Name)
}

func (s *RepositoryTestSuite) TestListDefaultSortIsNewestFirst() {
	clients := s.createClients(3)

	rows, _, err := s.clientRepo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal(clients[2].ID, rows[0].ID)
	s.Equal(clients[0].ID, rows[2].ID)
}

func (s *RepositoryTestSuite) TestListDeletedStatus() {
	clients := s.createClients(3)
	s.Require().NoError(s.clientRepo.Delete(s.ctx, clients[0].ID))

	tests := []struct {
		status models.DeletedStatus
		want   int64
	}{
		{models.DeletedStatusAll, 3},
		{models.DeletedStatusActive, 2},
		{models.DeletedStatusOnly, 1},
	}
	for _, tt := range tests {
		_, total, err := s.clientRepo.List(s.ctx, &models.ListOptions{DeletedStatus: tt.status})
		s.Require().NoError(err)
		s.Equal(tt.want, total, "deletedStatus=%q", tt.status)
	}
}

func (s *RepositoryTestSuite) TestListFiltersAndSearch() {
	acme := s.createTestClient("Acme")
	globex := s.createTestClient("Globex")
	s.createTestProject(acme.ID, "Discovery")
	s.createTestProject(acme.ID, "Rollout")
	s.createTestProject(globex.ID, "Discovery")

	rows, total, err := s.projectRepo.List(s.ctx, &models.ListOptions{
		Filters: map[string]string{"client_id": acme.ID},
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	for _, p := range rows {
		s.Equal(acme.ID, p.ClientID)
		s.Require().NotNil(p.Client)
		s.Equal("Acme", p.Client.Name)
	}

	_, total, err = s.projectRepo.List(s.ctx, &models.ListOptions{
		Search: map[string]string{"name": "DISC"},
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	_, total, err = s.projectRepo.List(s.ctx, &models.ListOptions{
		Filters: map[string]string{"client_id": globex.ID},
		Search:  map[string]string{"name": "roll"},
	})
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *RepositoryTestSuite) TestGetIncludesDeletedGetActiveDoesNot() {
	c := s.createTestClient("Acme")
	s.Require().NoError(s.clientRepo.Delete(s.ctx, c.ID))

	got, err := s.clientRepo.Get(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(got.IsDeleted())

	_, err = s.clientRepo.GetActive(s.ctx, c.ID)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *RepositoryTestSuite) TestDeleteAndRestore() {
	c := s.createTestClient("Acme")

	s.Require().NoError(s.clientRepo.Delete(s.ctx, c.ID))
	err := s.clientRepo.Delete(s.ctx, c.ID)
	s.True(errors.Is(err, gorm.ErrRecordNotFound), "deleting twice reports not found")

	s.Require().NoError(s.clientRepo.Restore(s.ctx, c.ID))
	got, err := s.clientRepo.GetActive(s.ctx, c.ID)
	s.Require().NoError(err)
	s.False(got.IsDeleted())

	err = s.clientRepo.Restore(s.ctx, c.ID)
	s.True(errors.Is(err, gorm.ErrRecordNotFound), "restoring an active row reports not found")
}

func (s *RepositoryTestSuite) TestUpdate() {
	c := s.createTestClient("Acme")
	c.Description = "updated"
	s.Require().NoError(s.clientRepo.Update(s.ctx, c))

	got, err := s.clientRepo.Get(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("updated", got.Description)
}

func (s *RepositoryTestSuite) TestStakeholderWithoutClient() {
	acme := s.createTestClient("Acme")
	s.createTestStakeholder(&acme.ID, "Ann")
	loose := s.createTestStakeholder(nil, "Bob")

	got, err := s.stakeholderRepo.Get(s.ctx, loose.ID)
	s.Require().NoError(err)
	s.Nil(got.Client)
	s.Empty(got.ClientName())

	rows, total, err := s.stakeholderRepo.ListByClient(s.ctx, acme.ID, nil)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("Acme", rows[0].ClientName())
}

func (s *RepositoryTestSuite) TestCountForClient() {
	acme := s.createTestClient("Acme")
	globex := s.createTestClient("Globex")
	a := s.createTestStakeholder(&acme.ID, "Ann")
	b := s.createTestStakeholder(&globex.ID, "Bob")

	n, err := s.stakeholderRepo.CountForClient(s.ctx, acme.ID, []string{a.ID, b.ID})
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	n, err = s.stakeholderRepo.CountForClient(s.ctx, acme.ID, nil)
	s.Require().NoError(err)
	s.Zero(n)
}
