package engine

import (
	"trickntreat-server/internal/domain"
	"trickntreat-server/internal/engine/handlers"
	"trickntreat-server/internal/engine/handlers/actions"
	"trickntreat-server/internal/infrastructure/journal"
	"trickntreat-server/internal/network"
	"trickntreat-server/pkg/api"
	"trickntreat-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// GameService связывает транспорт и игровую сессию: принимает команды
// из канала, гоняет их через реестр хендлеров и рассылает снапшоты.
type GameService struct {
	Session *GameSession

	// Hub - персональные каналы игроков, ScreenHub - общие экраны.
	Hub       *network.Broadcaster
	ScreenHub *network.Broadcaster

	CommandChan chan domain.InternalCommand

	Journal *journal.JournalService

	actionHandlers map[domain.ActionType]handlers.HandlerFunc

	log *logrus.Entry
}

func NewService(cfg Config) *GameService {
	s := &GameService{
		Session:        NewGameSession(cfg),
		Hub:            network.NewBroadcaster(),
		ScreenHub:      network.NewBroadcaster(),
		CommandChan:    make(chan domain.InternalCommand, 100),
		Journal:        journal.NewJournalService("replays"),
		actionHandlers: make(map[domain.ActionType]handlers.HandlerFunc),
		log:            logger.WithComponent("service"),
	}

	s.registerHandlers()

	// После каждого юнита и по опустошению очереди - рассылка.
	// handleQueueIdle сессии уже навешан; оборачиваем, не затирая.
	s.Session.Queue.OnStep = s.publishUpdate
	idle := s.Session.Queue.OnIdle
	s.Session.Queue.OnIdle = func() {
		if idle != nil {
			idle()
		}
		s.publishUpdate()
	}

	return s
}

func (s *GameService) registerHandlers() {
	s.actionHandlers[domain.ActionStartGame] = handlers.WithEmptyPayload(actions.HandleStartGame)
	s.actionHandlers[domain.ActionPause] = handlers.WithEmptyPayload(actions.HandlePause)
	s.actionHandlers[domain.ActionResume] = handlers.WithEmptyPayload(actions.HandleResume)

	steps := []domain.ActionType{
		domain.ActionMoveLeft, domain.ActionMoveRight,
		domain.ActionMoveUp, domain.ActionMoveDown,
	}
	for _, a := range steps {
		dx, dy, _ := a.StepOffset()
		s.actionHandlers[a] = handlers.WithEmptyPayload(actions.HandleStep(dx, dy))
	}
	s.actionHandlers[domain.ActionMoveTo] = handlers.WithPayload(actions.HandleMoveTo)

	s.actionHandlers[domain.ActionChooseAction] = handlers.WithPayload(actions.HandleChoose)

	// INIT не игровое действие: просто выслать клиенту текущий мир
	s.actionHandlers[domain.ActionInit] = handlers.WithEmptyPayload(func(ctx handlers.Context) error {
		s.publishTo(ctx.Actor)
		return nil
	})
}

// Start запускает очередь действий сессии и цикл обработки команд.
func (s *GameService) Start() {
	s.Session.Start()
	go s.run()
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Неизвестное действие отбрасывается здесь, не доходя до канала.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		s.log.WithField("action", externalCmd.Action).Debug("Unknown action dropped")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
}

func (s *GameService) run() {
	s.log.Info("Command loop started")
	for cmd := range s.CommandChan {
		s.executeCommand(cmd)
	}
}

// executeCommand находит актора и хендлер. Любая невалидность - молчаливый
// дроп с debug-логом: авторитетное состояние не трогаем, клиенту не отвечаем.
func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	actor := s.Session.GetCharacter(cmd.Token)
	if actor == nil {
		s.log.WithField("token", cmd.Token).Debug("Command from unknown character dropped")
		return
	}

	handler, ok := s.actionHandlers[cmd.Action]
	if !ok {
		return
	}

	s.Session.RecordAction(cmd)

	ctx := handlers.Context{
		Session: s.Session,
		Actor:   actor,
	}

	if err := handler(ctx, cmd.Payload); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"token":  cmd.Token,
		}).Debug("Command rejected")
	}
}

// publishUpdate рассылает свежие слепки всем подписанным игрокам и экранам.
func (s *GameService) publishUpdate() {
	for _, ch := range s.Session.Characters() {
		if s.Hub.HasSubscriber(ch.CharacterID) {
			s.Hub.SendTo(ch.CharacterID, *s.Session.BuildSnapshotFor(ch))
		}
	}

	if s.ScreenHub.SubscriberCount() > 0 {
		s.ScreenHub.Broadcast(*s.Session.BuildScreenSnapshot())
	}
}

// publishTo шлет слепок одному персонажу (ответ на INIT).
func (s *GameService) publishTo(ch *domain.Character) {
	if s.Hub.HasSubscriber(ch.CharacterID) {
		s.Hub.SendTo(ch.CharacterID, *s.Session.BuildSnapshotFor(ch))
	}
}

// SaveReplay сохраняет ленту действий сессии на диск.
func (s *GameService) SaveReplay() error {
	return s.Journal.Save(s.Session.Replay)
}

// LoadReplay читает ленту действий с диска (режим симуляции).
func (s *GameService) LoadReplay(path string) (*domain.ReplaySession, error) {
	return s.Journal.Load(path)
}
