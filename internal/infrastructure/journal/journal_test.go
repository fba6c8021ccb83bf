package journal

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"trickntreat-server/internal/domain"
)

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		SessionID: "sess_cafe01",
		Seed:      -1234567890,
		Timestamp: 1761868800,
		Actions: []domain.ReplayAction{
			{Round: 1, CharacterID: "alice", Action: domain.ActionStartGame},
			{Round: 1, CharacterID: "alice", Action: domain.ActionMoveRight},
			{Round: 2, CharacterID: "bob", Action: domain.ActionMoveTo, Payload: json.RawMessage(`{"x":5,"y":7}`)},
			{Round: 2, CharacterID: "bob", Action: domain.ActionChooseAction, Payload: json.RawMessage(`{"actionId":"knock"}`)},
		},
	}
}

func TestJournalRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := NewJournalService(dir)

	original := sampleSession()
	if err := svc.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(dir, "journal_-1234567890_sess_cafe01.tntj")
	loaded, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.SessionID != original.SessionID {
		t.Errorf("SessionID: expected %s, got %s", original.SessionID, loaded.SessionID)
	}
	if loaded.Seed != original.Seed {
		t.Errorf("Seed: expected %d, got %d", original.Seed, loaded.Seed)
	}
	if loaded.Timestamp != original.Timestamp {
		t.Errorf("Timestamp: expected %d, got %d", original.Timestamp, loaded.Timestamp)
	}

	if len(loaded.Actions) != len(original.Actions) {
		t.Fatalf("Expected %d actions, got %d", len(original.Actions), len(loaded.Actions))
	}
	for i, want := range original.Actions {
		got := loaded.Actions[i]
		if got.Round != want.Round || got.CharacterID != want.CharacterID || got.Action != want.Action {
			t.Errorf("Action %d: expected %+v, got %+v", i, want, got)
		}
		if !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("Action %d payload: expected %s, got %s", i, want.Payload, got.Payload)
		}
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleSession()); err != nil {
		t.Fatalf("writeBinary failed: %v", err)
	}

	data := buf.Bytes()
	copy(data[:4], "NOPE")

	if _, err := readBinary(bytes.NewReader(data)); err == nil {
		t.Error("Expected an error for a corrupted magic header")
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleSession()); err != nil {
		t.Fatalf("writeBinary failed: %v", err)
	}

	// Version - uint32 сразу после 4 байт магии
	data := buf.Bytes()
	data[4] = 99

	if _, err := readBinary(bytes.NewReader(data)); err == nil {
		t.Error("Expected an error for an unsupported version")
	}
}

func TestReadRejectsTruncatedFile(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleSession()); err != nil {
		t.Fatalf("writeBinary failed: %v", err)
	}

	data := buf.Bytes()
	if _, err := readBinary(bytes.NewReader(data[:len(data)-3])); err == nil {
		t.Error("Expected an error for a truncated journal")
	}
}

func TestWriteRejectsOversizedToken(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	s := &domain.ReplaySession{
		SessionID: "s",
		Actions: []domain.ReplayAction{
			{CharacterID: string(long), Action: domain.ActionInit},
		},
	}

	var buf bytes.Buffer
	if err := writeBinary(&buf, s); err == nil {
		t.Error("Expected an error for an oversized character id")
	}
}
