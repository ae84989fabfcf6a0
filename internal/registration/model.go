package registration

import "time"

// Registration is a completed webinar sign-up for a single Telegram user.
// TelegramID is unique per registration; repeated sign-ups overwrite the
// answer fields while CreatedAt keeps the time of the first registration.
type Registration struct {
	ID           int64     `db:"id"`
	TelegramID   int64     `db:"telegram_id"`
	FirstName    string    `db:"firstname"`
	LastName     string    `db:"lastname"`
	Phone        string    `db:"phone"`
	Company      string    `db:"company"`
	ActivityType string    `db:"activity_type"`
	CreatedAt    time.Time `db:"created_at"`
}
