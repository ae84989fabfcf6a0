package state

import "testing"

func TestGetReturnsDefaultIdleSession(t *testing.T) {
	m := NewMemoryManager()

	s := m.Get(42)
	if s.State != StateIdle {
		t.Fatalf("state = %s, expected %s", s.State, StateIdle)
	}
	if len(s.Draft) != 0 {
		t.Fatalf("draft not empty: %v", s.Draft)
	}
	if m.GetState(42) != StateIdle {
		t.Fatalf("GetState should report idle for unseen user")
	}
}

func TestSetStateCreatesSession(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("awaiting_firstname"))
	if got := m.GetState(1); got != State("awaiting_firstname") {
		t.Fatalf("state = %s", got)
	}
}

func TestDraftMergeAndSnapshot(t *testing.T) {
	m := NewMemoryManager()

	m.SetField(7, "firstname", "Anna")
	m.SetField(7, "lastname", "Kuznetsova")

	v, ok := m.Field(7, "firstname")
	if !ok || v != "Anna" {
		t.Fatalf("Field = %q, %v", v, ok)
	}

	draft := m.Draft(7)
	if len(draft) != 2 {
		t.Fatalf("draft size = %d", len(draft))
	}

	// Mutating the snapshot must not leak back into the store.
	draft["firstname"] = "Boris"
	if v, _ := m.Field(7, "firstname"); v != "Anna" {
		t.Fatalf("snapshot mutation leaked into store: %q", v)
	}
}

func TestResetClearsStateAndDraft(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(9, State("awaiting_phone"))
	m.SetField(9, "firstname", "Anna")

	m.Reset(9)
	if m.GetState(9) != StateIdle {
		t.Fatalf("state after reset = %s", m.GetState(9))
	}
	if len(m.Draft(9)) != 0 {
		t.Fatalf("draft after reset = %v", m.Draft(9))
	}
}

func TestClearAll(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("completed"))
	m.SetState(2, State("awaiting_company"))
	m.ClearAll()

	if m.GetState(1) != StateIdle || m.GetState(2) != StateIdle {
		t.Fatal("sessions survived ClearAll")
	}
}
