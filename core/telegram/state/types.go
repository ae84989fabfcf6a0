package state

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores the conversation state and the draft of accepted answers
// for a user. A session lives only in process memory; losing in-progress
// sessions on restart is an accepted tradeoff.
type Session struct {
	State State
	Draft map[string]string
}

// Manager owns user sessions keyed by Telegram user ID. A session is created
// lazily with StateIdle and an empty draft; the draft accumulates only values
// that a conversation flow has already validated.
type Manager interface {
	// Get returns a snapshot of the session, creating nothing.
	Get(userID int64) *Session
	SetState(userID int64, st State)
	GetState(userID int64) State
	// SetField merges one accepted answer into the draft.
	SetField(userID int64, key, value string)
	Field(userID int64, key string) (string, bool)
	// Draft returns a copy of the accumulated answers.
	Draft(userID int64) map[string]string
	// Reset returns the session to StateIdle with a cleared draft.
	Reset(userID int64)
	// Clear removes the session entirely.
	Clear(userID int64)
	// ClearAll wipes every session; teardown hook for tests.
	ClearAll()
}
