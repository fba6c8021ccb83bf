package actions

import (
	"trickntreat-server/internal/engine/handlers"
)

// Управление жизненным циклом игры. Валидность переходов (нельзя
// стартовать дважды, нельзя продолжить незапаузенное) проверяет сессия.

func HandleStartGame(ctx handlers.Context) error {
	ctx.Session.StartGame()
	return nil
}

func HandlePause(ctx handlers.Context) error {
	ctx.Session.PauseGame()
	return nil
}

func HandleResume(ctx handlers.Context) error {
	ctx.Session.ResumeGame()
	return nil
}
