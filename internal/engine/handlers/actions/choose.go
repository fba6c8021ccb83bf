package actions

import (
	"trickntreat-server/internal/engine/handlers"
	"trickntreat-server/pkg/api"
)

// HandleChoose - выбор варианта в активном энкаунтере.
func HandleChoose(ctx handlers.Context, p api.ChoicePayload) error {
	ctx.Session.ChooseEncounterAction(ctx.Actor, p.EncounterID, p.ActionID)
	return nil
}
