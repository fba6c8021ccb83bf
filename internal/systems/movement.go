package systems

import (
	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
)

// StepResult - результат вычисления одного шага. Не меняет состояние мира!
type StepResult struct {
	NewPos    grid.Point
	HasMoved  bool
	IsBlocked bool
	// Encounter - энкаунтер на целевой клетке (проверяется после шага)
	Encounter *domain.Encounter
}

// CalculateStep валидирует шаг персонажа на dx,dy.
// Нелегальный шаг (стена, выход за границы, нет очков движения) - это
// не ошибка, а пустой результат: поздние и кривые команды клиентов не
// должны расшатывать авторитетное состояние.
func CalculateStep(w *domain.GameWorld, ch *domain.Character, dx, dy int) StepResult {
	target := ch.Pos.Shift(dx, dy)
	res := StepResult{NewPos: target}

	if !ch.CanMove() {
		res.IsBlocked = true
		return res
	}

	if !w.Tiles.IsWalkableAt(target) {
		res.IsBlocked = true
		return res
	}

	res.HasMoved = true
	res.Encounter = w.EncounterAt(target)
	return res
}
