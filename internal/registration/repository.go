package registration

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repository lookups when no registration exists
// for the requested Telegram user.
var ErrNotFound = errors.New("registration: not found")

// Repository persists completed registrations.
type Repository interface {
	// Upsert inserts a registration or overwrites the answer fields of an
	// existing one with the same TelegramID, keeping the original CreatedAt.
	Upsert(ctx context.Context, reg *Registration) error
	// GetByTelegramID returns the registration for a user or ErrNotFound.
	GetByTelegramID(ctx context.Context, telegramID int64) (*Registration, error)
	// Count returns the total number of stored registrations.
	Count(ctx context.Context) (int, error)
	// ListAll returns every registration ordered by insertion.
	ListAll(ctx context.Context) ([]Registration, error)
	// Close releases the underlying storage handle.
	Close() error
}
