package handlers

import (
	"encoding/json"

	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
)

// Session описывает операции игровой сессии, доступные хендлерам.
// GameSession из пакета engine реализует этот интерфейс; хендлеры
// не знают о его внутреннем устройстве.
type Session interface {
	StartGame()
	PauseGame()
	ResumeGame()

	// StepCharacter - шаг на соседнюю клетку.
	StepCharacter(ch *domain.Character, dx, dy int)

	// MoveCharacterTo - серия шагов к точке в пределах очков движения.
	MoveCharacterTo(ch *domain.Character, to grid.Point)

	// ChooseEncounterAction - выбор варианта в активном энкаунтере.
	// encounterID привязывает выбор к энкаунтеру, которому он адресован.
	ChooseEncounterAction(ch *domain.Character, encounterID, actionID string)
}

// Context передает хендлеру сессию и того, кто выполняет команду.
type Context struct {
	Session Session
	Actor   *domain.Character
}

// HandlerFunc - это контракт для любой команды (MOVE_TO, CHOOSE_ACTION, etc).
// Ошибка означает невалидный ввод: вызывающая сторона логирует и молча
// отбрасывает команду, клиенту ничего не отправляется.
type HandlerFunc func(ctx Context, payload json.RawMessage) error
