package domain

import "strings"

// ActionType - внутренний числовой идентификатор действия клиента
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionStartGame
	ActionPause
	ActionResume
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveTo
	ActionChooseAction
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":          ActionInit,
	"START_GAME":    ActionStartGame,
	"PAUSE":         ActionPause,
	"RESUME":        ActionResume,
	"MOVE_LEFT":     ActionMoveLeft,
	"MOVE_RIGHT":    ActionMoveRight,
	"MOVE_UP":       ActionMoveUp,
	"MOVE_DOWN":     ActionMoveDown,
	"MOVE_TO":       ActionMoveTo,
	"CHOOSE_ACTION": ActionChooseAction,
}

// Маппинг для логов Domain -> String
var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for s, a := range actionStringToCmd {
		m[a] = s
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// StepOffset возвращает смещение одного шага для MOVE_* действий.
// Для остальных действий возвращает (0,0,false).
func (a ActionType) StepOffset() (dx, dy int, ok bool) {
	switch a {
	case ActionMoveLeft:
		return -1, 0, true
	case ActionMoveRight:
		return 1, 0, true
	case ActionMoveUp:
		return 0, -1, true
	case ActionMoveDown:
		return 0, 1, true
	}
	return 0, 0, false
}
