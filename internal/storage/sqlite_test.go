package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"github.com/m3rciful/regbot/core/database"
	"github.com/m3rciful/regbot/internal/registration"
	"github.com/m3rciful/regbot/internal/storage"
)

type RepoSuite struct {
	suite.Suite

	db   *sqlx.DB
	repo *storage.RegistrationRepo
	ctx  context.Context
}

func (s *RepoSuite) SetupTest() {
	cfg := database.Config{Path: filepath.Join(s.T().TempDir(), "bot.db")}
	db, err := database.Connect(cfg)
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db))

	s.db = db
	s.repo = storage.NewRegistrationRepo(db)
	s.ctx = context.Background()
}

func (s *RepoSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(RepoSuite))
}

func (s *RepoSuite) sample(telegramID int64) *registration.Registration {
	return &registration.Registration{
		TelegramID:   telegramID,
		FirstName:    "Анна",
		LastName:     "Петрова",
		Phone:        "+7 (912) 345-67-89",
		Company:      "ООО Ромашка",
		ActivityType: "Консалтинг",
	}
}

func (s *RepoSuite) TestUpsertAndGet() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.sample(1)))

	got, err := s.repo.GetByTelegramID(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(1), got.TelegramID)
	s.Equal("Анна", got.FirstName)
	s.Equal("Петрова", got.LastName)
	s.Equal("+7 (912) 345-67-89", got.Phone)
	s.Equal("ООО Ромашка", got.Company)
	s.Equal("Консалтинг", got.ActivityType)
	s.False(got.CreatedAt.IsZero())
	s.Greater(got.ID, int64(0))
}

func (s *RepoSuite) TestGetMissingReturnsNotFound() {
	_, err := s.repo.GetByTelegramID(s.ctx, 42)
	s.Require().Error(err)
	s.True(errors.Is(err, registration.ErrNotFound))
}

func (s *RepoSuite) TestUpsertPreservesCreatedAt() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.sample(7)))
	first, err := s.repo.GetByTelegramID(s.ctx, 7)
	s.Require().NoError(err)

	updated := s.sample(7)
	updated.FirstName = "Мария"
	updated.Company = "ИП Иванова"
	s.Require().NoError(s.repo.Upsert(s.ctx, updated))

	second, err := s.repo.GetByTelegramID(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Мария", second.FirstName)
	s.Equal("ИП Иванова", second.Company)
	s.Equal(first.ID, second.ID)
	s.WithinDuration(first.CreatedAt, second.CreatedAt, time.Second)
}

func (s *RepoSuite) TestCountOnePerUser() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.sample(1)))
	s.Require().NoError(s.repo.Upsert(s.ctx, s.sample(1)))
	s.Require().NoError(s.repo.Upsert(s.ctx, s.sample(2)))

	n, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *RepoSuite) TestListAllOrdered() {
	for _, id := range []int64{3, 1, 2} {
		s.Require().NoError(s.repo.Upsert(s.ctx, s.sample(id)))
	}

	regs, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 3)
	// Insertion order, not telegram_id order.
	s.Equal(int64(3), regs[0].TelegramID)
	s.Equal(int64(1), regs[1].TelegramID)
	s.Equal(int64(2), regs[2].TelegramID)
}
