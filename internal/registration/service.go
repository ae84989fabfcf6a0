package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m3rciful/regbot/core/logger"
	"log/slog"
)

// Service wraps the repository with logging and timing for every operation.
type Service struct {
	repo Repository
}

// NewService builds a Service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a completed questionnaire, overwriting a previous
// registration of the same user.
func (s *Service) Register(ctx context.Context, reg *Registration) error {
	if reg == nil {
		return fmt.Errorf("registration: nil registration")
	}

	start := time.Now()
	err := s.repo.Upsert(ctx, reg)
	took := logger.RoundMS(time.Since(start))

	if err != nil {
		logger.REG.LogAttrs(ctx, slog.LevelError, "register",
			slog.String("event", "register"),
			slog.String("status", "fail"),
			slog.Int64("user_id", reg.TelegramID),
			slog.Duration("duration", took),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return fmt.Errorf("registration: save failed: %w", err)
	}

	logger.REG.LogAttrs(ctx, slog.LevelInfo, "register",
		slog.String("event", "register"),
		slog.String("status", "ok"),
		slog.Int64("user_id", reg.TelegramID),
		slog.Duration("duration", took),
	)
	return nil
}

// Find returns the stored registration for a user, or ErrNotFound.
func (s *Service) Find(ctx context.Context, telegramID int64) (*Registration, error) {
	start := time.Now()
	reg, err := s.repo.GetByTelegramID(ctx, telegramID)
	took := logger.RoundMS(time.Since(start))

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.REG.LogAttrs(ctx, slog.LevelDebug, "find",
				slog.String("event", "find"),
				slog.String("status", "miss"),
				slog.Int64("user_id", telegramID),
				slog.Duration("duration", took),
			)
			return nil, err
		}
		logger.REG.LogAttrs(ctx, slog.LevelError, "find",
			slog.String("event", "find"),
			slog.String("status", "fail"),
			slog.Int64("user_id", telegramID),
			slog.Duration("duration", took),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return nil, err
	}

	logger.REG.LogAttrs(ctx, slog.LevelDebug, "find",
		slog.String("event", "find"),
		slog.String("status", "ok"),
		slog.Int64("user_id", telegramID),
		slog.Duration("duration", took),
	)
	return reg, nil
}

// Count reports how many registrations are stored.
func (s *Service) Count(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := s.repo.Count(ctx)
	took := logger.RoundMS(time.Since(start))

	if err != nil {
		logger.REG.LogAttrs(ctx, slog.LevelError, "count",
			slog.String("event", "count"),
			slog.String("status", "fail"),
			slog.Duration("duration", took),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return 0, err
	}

	logger.REG.LogAttrs(ctx, slog.LevelDebug, "count",
		slog.String("event", "count"),
		slog.String("status", "ok"),
		slog.Int("count", n),
		slog.Duration("duration", took),
	)
	return n, nil
}

// List returns all registrations in insertion order.
func (s *Service) List(ctx context.Context) ([]Registration, error) {
	start := time.Now()
	regs, err := s.repo.ListAll(ctx)
	took := logger.RoundMS(time.Since(start))

	if err != nil {
		logger.REG.LogAttrs(ctx, slog.LevelError, "list",
			slog.String("event", "list"),
			slog.String("status", "fail"),
			slog.Duration("duration", took),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return nil, err
	}

	logger.REG.LogAttrs(ctx, slog.LevelDebug, "list",
		slog.String("event", "list"),
		slog.String("status", "ok"),
		slog.Int("count", len(regs)),
		slog.Duration("duration", took),
	)
	return regs, nil
}
