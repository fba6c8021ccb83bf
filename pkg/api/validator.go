package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p MoveToPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("target coordinates cannot be negative")
	}
	return nil
}

func (p ChoicePayload) Validate() error {
	if p.EncounterID == "" {
		return errors.New("encounterId is required")
	}
	if p.ActionID == "" {
		return errors.New("actionId is required")
	}
	return nil
}
