package actions

import (
	"trickntreat-server/internal/engine/handlers"
	"trickntreat-server/pkg/api"
	"trickntreat-server/pkg/grid"
)

// HandleStep возвращает хендлер шага в фиксированном направлении.
// Четыре MOVE_* команды регистрируются через эту фабрику.
func HandleStep(dx, dy int) handlers.EmptyHandlerFunc {
	return func(ctx handlers.Context) error {
		ctx.Session.StepCharacter(ctx.Actor, dx, dy)
		return nil
	}
}

// HandleMoveTo - перемещение к точке карты за несколько шагов.
func HandleMoveTo(ctx handlers.Context, p api.MoveToPayload) error {
	ctx.Session.MoveCharacterTo(ctx.Actor, grid.Point{X: p.X, Y: p.Y})
	return nil
}
