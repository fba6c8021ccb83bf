package domain

import "encoding/json"

// InternalCommand это команда, прошедшая первичный парсинг.
// Token - ID персонажа, от имени которого выполняется действие.
type InternalCommand struct {
	Action  ActionType
	Token   string
	Payload json.RawMessage
}
