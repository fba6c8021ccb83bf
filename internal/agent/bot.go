package agent

import (
	"encoding/json"
	"math/rand"

	"github.com/sirupsen/logrus"

	"trickntreat-server/internal/domain"
	"trickntreat-server/internal/engine"
	"trickntreat-server/pkg/api"
	"trickntreat-server/pkg/logger"
	"trickntreat-server/pkg/utils"
)

// Bot представляет собой "игрока-компьютера" (Headless Agent).
// Этот код является примером ВНЕШНЕГО клиента: бот подключается к хабу
// так же, как обычный игрок, видит мир только через снапшоты и отвечает
// теми же командами протокола. Прямого доступа к состоянию сессии у
// него нет.
//
// Жизненный цикл:
//  1. NewBot -> создание персонажа, регистрация в хабе, личный канал (Inbox).
//  2. Run -> запускается в горутине, слушает Inbox.
//  3. Когда сервер сообщает "твой ход" (ActiveCharacterID == CharacterID
//     и состояние READY), вызывается makeMove.
type Bot struct {
	CharacterID string
	Service     *engine.GameService
	Inbox       chan api.ServerResponse

	rng *rand.Rand
	log *logrus.Entry
}

func NewBot(name string, service *engine.GameService) *Bot {
	ch := service.Session.CreateCharacterForClient(name, name, "agent_"+name)

	b := &Bot{
		CharacterID: ch.CharacterID,
		Service:     service,
		Inbox:       service.Hub.Register(ch.CharacterID),
		rng:         rand.New(rand.NewSource(utils.StringToSeed(name))),
		log:         logger.WithComponent("bot").WithField("character_id", ch.CharacterID),
	}

	b.log.Info("Agent created")
	return b
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	defer b.Service.Hub.Unregister(b.CharacterID)

	for event := range b.Inbox {
		isMyTurn := event.ActiveCharacterID == b.CharacterID
		isReady := event.GameState == string(domain.GameStateReady)
		if isMyTurn && isReady {
			b.makeMove(event)
		}
	}
	b.log.Info("Agent shut down")
}

// makeMove принимает решение на основе полученного снапшота.
func (b *Bot) makeMove(state api.ServerResponse) {
	// Висящий энкаунтер важнее движения
	if state.Encounter != nil {
		b.chooseEncounterAction(state.Encounter)
		return
	}

	me := b.findSelf(state)
	if me == nil {
		b.log.Debug("Self not found in snapshot, skipping")
		return
	}
	if me.Stats != nil && me.Stats.Movement <= 0 {
		return // ход закончится сам
	}

	// Случайный шаг на проходимую освещенную клетку
	walkable := make(map[[2]int]bool, len(state.Map))
	for _, t := range state.Map {
		if t.IsWalkable {
			walkable[[2]int{t.X, t.Y}] = true
		}
	}

	dirs := []domain.ActionType{
		domain.ActionMoveLeft, domain.ActionMoveRight,
		domain.ActionMoveUp, domain.ActionMoveDown,
	}
	b.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, dir := range dirs {
		dx, dy, _ := dir.StepOffset()
		if walkable[[2]int{me.Pos.X + dx, me.Pos.Y + dy}] {
			b.sendCommand(dir, nil)
			return
		}
	}

	b.log.Debug("No walkable neighbor, passing")
}

// chooseEncounterAction выбирает случайный доступный вариант.
func (b *Bot) chooseEncounterAction(e *api.EncounterView) {
	var available []api.EncounterActionView
	for _, act := range e.Actions {
		if act.DoesMeetConditions {
			available = append(available, act)
		}
	}
	if len(available) == 0 {
		b.log.WithField("encounter_id", e.ID).Warn("No available encounter action")
		return
	}

	pick := available[b.rng.Intn(len(available))]
	b.sendCommand(domain.ActionChooseAction, api.ChoicePayload{EncounterID: e.ID, ActionID: pick.ActionID})
}

func (b *Bot) findSelf(state api.ServerResponse) *api.CharacterView {
	for i := range state.Characters {
		if state.Characters[i].ID == b.CharacterID {
			return &state.Characters[i]
		}
	}
	return nil
}

func (b *Bot) sendCommand(action domain.ActionType, payload interface{}) {
	cmd := api.ClientCommand{
		Action: action.String(),
		Token:  b.CharacterID,
	}

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			b.log.WithError(err).Warn("Failed to marshal payload")
			return
		}
		cmd.Payload = payloadBytes
	}

	b.Service.ProcessCommand(cmd)
}
