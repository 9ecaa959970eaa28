package dialogue

import (
	"errors"
	"testing"
)

func testSession(t *testing.T, store Store) *Session {
	t.Helper()
	s, err := NewSession(orderSchema(), coachSpecs(), coachTopics(), store)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSession_AssignsID(t *testing.T) {
	a := testSession(t, &memStore{})
	b := testSession(t, &memStore{})

	if a.ID == "" {
		t.Fatal("session ID should not be empty")
	}
	if a.ID == b.ID {
		t.Error("two sessions must not share an ID")
	}
}

func TestNewSession_IndependentState(t *testing.T) {
	a := testSession(t, &memStore{})
	b := testSession(t, &memStore{})

	mustSet(t, a.Record, "name", "Sam")
	if _, ok := b.Record.Scalar("name"); ok {
		t.Error("sessions must not share record state")
	}

	if _, err := a.Personas.Switch("quiz"); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	if got := b.Personas.Active().Mode; got != "selection" {
		t.Errorf("second session mode = %q, want selection untouched", got)
	}
}

func TestNewSession_RejectsBadSchema(t *testing.T) {
	bad := Schema{{Name: "x", Kind: FieldKind("bogus")}}
	if _, err := NewSession(bad, coachSpecs(), nil, nil); err == nil {
		t.Fatal("NewSession should reject an invalid schema")
	}
}

func TestSessionFinalize_UsesSessionStore(t *testing.T) {
	store := &memStore{}
	s := testSession(t, store)
	mustSet(t, s.Record, "drink_type", "Latte")
	mustSet(t, s.Record, "size", "Medium")
	mustSet(t, s.Record, "milk", "Oat")
	mustSet(t, s.Record, "name", "Sam")

	res, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if res.ID != "Sam" || store.writes != 1 {
		t.Errorf("Finalize produced %q with %d writes, want Sam with 1", res.ID, store.writes)
	}
}

func TestSessionFinalize_NoStoreConfigured(t *testing.T) {
	s := testSession(t, nil)
	if _, err := s.Finalize(); err == nil {
		t.Fatal("Finalize without a store should fail")
	}
}

func TestRestart_DiscardsRecordKeepsPersona(t *testing.T) {
	s := testSession(t, &memStore{})
	mustSet(t, s.Record, "name", "Sam")
	if _, err := s.Personas.Switch("quiz"); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}

	s.Restart()

	if _, ok := s.Record.Scalar("name"); ok {
		t.Error("Restart should discard record values")
	}
	if got := s.Personas.Active().Mode; got != "quiz" {
		t.Errorf("Restart changed persona mode to %q, want quiz kept", got)
	}
}

func TestRestart_AfterFinalizeAllowsNewRecord(t *testing.T) {
	store := &memStore{}
	s := testSession(t, store)
	mustSet(t, s.Record, "drink_type", "Latte")
	mustSet(t, s.Record, "size", "Medium")
	mustSet(t, s.Record, "milk", "Oat")
	mustSet(t, s.Record, "name", "Sam")
	if _, err := s.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	s.Restart()

	if s.Record.Finalized() {
		t.Error("restarted record should not be finalized")
	}
	if err := s.Record.Set("name", "Ana"); err != nil {
		t.Errorf("restarted record should accept mutation, got: %v", err)
	}
	if errors.Is(s.Record.Set("bogus", "x"), ErrFinalized) {
		t.Error("unknown-field error should not be ErrFinalized after restart")
	}
}
