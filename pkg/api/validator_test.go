package api

import "testing"

func TestMoveToPayloadValidate(t *testing.T) {
	if err := (MoveToPayload{X: 3, Y: 0}).Validate(); err != nil {
		t.Errorf("Expected valid payload, got %v", err)
	}
	if err := (MoveToPayload{X: -1, Y: 2}).Validate(); err == nil {
		t.Error("Expected negative coordinates to be rejected")
	}
}

func TestChoicePayloadValidate(t *testing.T) {
	if err := (ChoicePayload{EncounterID: "e1", ActionID: "knock"}).Validate(); err != nil {
		t.Errorf("Expected valid payload, got %v", err)
	}
	if err := (ChoicePayload{EncounterID: "e1"}).Validate(); err == nil {
		t.Error("Expected empty actionId to be rejected")
	}
	if err := (ChoicePayload{ActionID: "knock"}).Validate(); err == nil {
		t.Error("Expected empty encounterId to be rejected")
	}
}
