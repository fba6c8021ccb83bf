package domain

import "encoding/json"

// ReplayAction - одна принятая команда игрока в журнале сессии.
type ReplayAction struct {
	Round       int             `json:"round"`
	CharacterID string          `json:"characterId"`
	Action      ActionType      `json:"action"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// ReplaySession - журнал одной игровой сессии: сид генерации плюс
// последовательность принятых команд. Этого достаточно, чтобы
// пересимулировать сессию при разборе багов. Состояние мира на диск
// не пишется - при старте игры оно строится с нуля.
type ReplaySession struct {
	SessionID string         `json:"sessionId"`
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}
