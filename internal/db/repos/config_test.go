package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

type ConfigRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestConfigRepository(t *testing.T) {
	suite.Run(t, new(ConfigRepositoryTestSuite))
}

func (s *ConfigRepositoryTestSuite) createConfig() *models.Config {
	c := s.createTestClient("Acme")
	p := s.createTestProject(c.ID, "Discovery")
	cfg := &models.Config{Name: "questions", ClientID: c.ID, ProjectID: p.ID, Version: 1, Body: `{"v":1}`}
	s.Require().NoError(s.configRepo.Create(s.ctx, cfg))
	return cfg
}

func (s *ConfigRepositoryTestSuite) TestUpdateVersioned() {
	cfg := s.createConfig()

	cfg.Body = `{"v":2}`
	s.Require().NoError(s.configRepo.UpdateVersioned(s.ctx, cfg))
	s.Equal(2, cfg.Version)

	cfg.Body = `{"v":3}`
	s.Require().NoError(s.configRepo.UpdateVersioned(s.ctx, cfg))
	s.Equal(3, cfg.Version)

	got, err := s.configRepo.Get(s.ctx, cfg.ID)
	s.Require().NoError(err)
	s.Equal(3, got.Version)
	s.Equal(`{"v":3}`, got.Body)

	versions, total, err := s.configRepo.ListVersions(s.ctx, cfg.ID, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(versions, 2)
	s.Equal(2, versions[0].Version)
	s.Equal(`{"v":2}`, versions[0].Body)
	s.Equal(1, versions[1].Version)
	s.Equal(`{"v":1}`, versions[1].Body)
}

func (s *ConfigRepositoryTestSuite) TestUpdateVersionedConflict() {
	cfg := s.createConfig()

	stale := *cfg
	cfg.Body = `{"v":2}`
	s.Require().NoError(s.configRepo.UpdateVersioned(s.ctx, cfg))

	stale.Body = `{"lost":true}`
	err := s.configRepo.UpdateVersioned(s.ctx, &stale)
	s.ErrorIs(err, ErrVersionConflict)

	_, total, err := s.configRepo.ListVersions(s.ctx, cfg.ID, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(1), total, "a conflicting update stores no snapshot")
}
