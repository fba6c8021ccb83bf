package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"trickntreat-server/internal/domain"
	"trickntreat-server/internal/systems"
	"trickntreat-server/pkg/grid"
	"trickntreat-server/pkg/logger"
	"trickntreat-server/pkg/mapgen"
	"trickntreat-server/pkg/pathfind"
	"trickntreat-server/pkg/utils"
)

// GameSession - одна запущенная игра: мир, фаза, раунды и очередь действий.
//
// Вся мутация состояния проходит через ActionQueue и выполняется ее
// единственной горутиной. Командные методы (StepCharacter, MoveCharacterTo,
// ChooseEncounterAction) только валидируют ввод и планируют юниты;
// невалидный ввод отбрасывается молча, меняется только уровень логов.
type GameSession struct {
	mu sync.Mutex

	World    *domain.GameWorld
	Biomes   mapgen.BiomeList
	StartPos grid.Point

	Seed int64
	Rng  *rand.Rand

	Queue  *ActionQueue
	Replay *domain.ReplaySession

	State domain.GameState
	Round int

	// turnOrder - порядок ходов текущего раунда (перемешивается каждый раунд)
	turnOrder []*domain.Character
	turnIdx   int

	activeCharacter *domain.Character
	activeEncounter *domain.Encounter

	log *logrus.Entry
}

// NewGameSession генерирует мир по сиду и готовит сессию в состоянии INACTIVE.
func NewGameSession(cfg Config) *GameSession {
	rng := rand.New(rand.NewSource(cfg.Seed))

	world, biomes, start := mapgen.NewGenerator(cfg.Map, rng).Generate()
	systems.RecomputeLighting(world)

	s := &GameSession{
		World:    world,
		Biomes:   biomes,
		StartPos: start,
		Seed:     cfg.Seed,
		Rng:      rng,
		Queue:    NewActionQueue(cfg.QueueDelay),
		State:    domain.GameStateInactive,
		Replay: &domain.ReplaySession{
			SessionID: utils.GenerateID(),
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
		log: logger.WithComponent("session"),
	}

	s.Queue.OnIdle = s.handleQueueIdle
	return s
}

// Start запускает потребителя очереди действий.
func (s *GameSession) Start() {
	s.Queue.Start()
}

// Stop останавливает очередь.
func (s *GameSession) Stop() {
	s.Queue.Stop()
}

// --- ПОДКЛЮЧЕНИЕ ПЕРСОНАЖЕЙ ---

// CreateCharacterForClient находит или создает персонажа для клиента.
// Повторное подключение с тем же токеном возвращает существующего.
func (s *GameSession) CreateCharacterForClient(token, name, sessionID string) *domain.Character {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		token = utils.GenerateID()
	}
	if existing := s.World.GetCharacter(token); existing != nil {
		existing.SessionID = sessionID
		return existing
	}

	ch := domain.NewCharacter(token, name, sessionID)
	ch.Pos = s.findSpawnPoint()

	s.World.AddCharacter(ch)

	// Опоздавший к запущенной игре встает в хвост текущего раунда
	if s.State != domain.GameStateInactive {
		s.turnOrder = append(s.turnOrder, ch)
	}

	systems.RecomputeLighting(s.World)

	s.log.WithFields(logrus.Fields{
		"character_id": ch.CharacterID,
		"name":         name,
		"pos":          ch.Pos,
	}).Info("Character joined")

	return ch
}

// findSpawnPoint ищет свободную проходимую клетку рядом со стартовой.
func (s *GameSession) findSpawnPoint() grid.Point {
	if s.World.CharacterAt(s.StartPos) == nil && s.World.Tiles.IsWalkableAt(s.StartPos) {
		return s.StartPos
	}

	for _, p := range pathfind.CellsWithinDistance(s.World.Tiles, s.StartPos, 5) {
		if s.World.CharacterAt(p) == nil {
			return p
		}
	}
	return s.StartPos
}

// GetCharacter ищет персонажа по ID.
func (s *GameSession) GetCharacter(id string) *domain.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.World.GetCharacter(id)
}

// Characters возвращает копию списка персонажей.
func (s *GameSession) Characters() []*domain.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Character, len(s.World.Characters))
	copy(out, s.World.Characters)
	return out
}

// RecordAction пишет выполненную команду в ленту реплея.
func (s *GameSession) RecordAction(cmd domain.InternalCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Replay.Actions = append(s.Replay.Actions, domain.ReplayAction{
		Round:       s.Round,
		CharacterID: cmd.Token,
		Action:      cmd.Action,
		Payload:     cmd.Payload,
	})
}

// --- ЖИЗНЕННЫЙ ЦИКЛ ---

// StartGame переводит сессию INACTIVE -> WORKING и планирует первый раунд.
func (s *GameSession) StartGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != domain.GameStateInactive {
		s.log.WithField("state", s.State).Debug("START_GAME ignored: game already running")
		return
	}
	if len(s.World.Characters) == 0 {
		s.log.Warn("START_GAME ignored: no characters joined")
		return
	}

	s.State = domain.GameStateWorking
	s.Queue.Enqueue("round:start", s.unitStartRound)

	s.log.WithField("characters", len(s.World.Characters)).Info("Game started")
}

// PauseGame ставит игру на паузу. Допустимо только из READY.
func (s *GameSession) PauseGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != domain.GameStateReady {
		s.log.WithField("state", s.State).Debug("PAUSE ignored")
		return
	}

	s.State = domain.GameStatePaused
	s.Queue.Pause()
	s.log.Info("Game paused")
}

// ResumeGame снимает паузу.
func (s *GameSession) ResumeGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != domain.GameStatePaused {
		s.log.WithField("state", s.State).Debug("RESUME ignored")
		return
	}

	s.State = domain.GameStateReady
	s.Queue.Resume()
	s.log.Info("Game resumed")
}

// unitStartRound - юнит начала раунда: инкремент счетчика и новый
// перемешанный порядок ходов.
func (s *GameSession) unitStartRound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Round++

	s.turnOrder = make([]*domain.Character, len(s.World.Characters))
	copy(s.turnOrder, s.World.Characters)
	s.Rng.Shuffle(len(s.turnOrder), func(i, j int) {
		s.turnOrder[i], s.turnOrder[j] = s.turnOrder[j], s.turnOrder[i]
	})

	s.turnIdx = 0
	s.log.WithField("round", s.Round).Info("Round started")

	s.lockedBeginTurn()
}

// unitNextTurn - юнит перехода хода: следующий персонаж или новый раунд.
func (s *GameSession) unitNextTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turnIdx++
	if s.turnIdx >= len(s.turnOrder) {
		s.Queue.Enqueue("round:start", s.unitStartRound)
		return
	}

	s.lockedBeginTurn()
}

// lockedBeginTurn активирует персонажа turnOrder[turnIdx]. Вызывается под mu.
func (s *GameSession) lockedBeginTurn() {
	ch := s.turnOrder[s.turnIdx]

	s.activeCharacter = ch
	ch.IsActive = true

	systems.RecomputeLighting(s.World)

	s.log.WithFields(logrus.Fields{
		"round":        s.Round,
		"character_id": ch.CharacterID,
	}).Info("Turn started")
}

// unitEndTurn - юнит конца хода: сброс движения и флага активности.
func (s *GameSession) unitEndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.activeCharacter
	if ch == nil {
		return
	}

	ch.IsActive = false
	ch.Stats.Movement.ResetToBase()

	s.activeCharacter = nil
	s.activeEncounter = nil

	s.Queue.Enqueue("turn:next", s.unitNextTurn)
}

// handleQueueIdle вызывается очередью, когда все юниты выполнены:
// мир стабилен, можно принимать ввод.
func (s *GameSession) handleQueueIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == domain.GameStateWorking {
		s.State = domain.GameStateReady
	}
}

// --- ДВИЖЕНИЕ ---

// StepCharacter валидирует шаг активного персонажа и планирует его в очередь.
func (s *GameSession) StepCharacter(ch *domain.Character, dx, dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lockedAcceptsInput(ch) {
		return
	}

	s.State = domain.GameStateWorking
	s.Queue.Enqueue("move:step", func() { s.unitStep(ch, dx, dy) })
}

// MoveCharacterTo строит путь до точки и планирует серию шагов.
// Недостижимая или слишком далекая цель отбрасывается целиком.
func (s *GameSession) MoveCharacterTo(ch *domain.Character, to grid.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lockedAcceptsInput(ch) {
		return
	}

	path := pathfind.ShortestPath(s.World.Tiles, ch.Pos, to)
	steps := len(path) - 1
	if steps < 1 {
		s.log.WithField("to", to).Debug("MOVE_TO ignored: unreachable or zero-length path")
		return
	}
	if steps > ch.Stats.Movement.Current {
		s.log.WithFields(logrus.Fields{
			"to":       to,
			"steps":    steps,
			"movement": ch.Stats.Movement.Current,
		}).Debug("MOVE_TO ignored: not enough movement")
		return
	}

	s.State = domain.GameStateWorking
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		s.Queue.Enqueue("move:step", func() { s.unitStep(ch, dx, dy) })
	}
}

// lockedAcceptsInput - общий гейт игровых команд: игра ждет ввода,
// ходит именно этот персонаж, выбор в энкаунтере не висит.
func (s *GameSession) lockedAcceptsInput(ch *domain.Character) bool {
	if ch == nil {
		return false
	}
	if s.State != domain.GameStateReady {
		s.log.WithField("state", s.State).Debug("Command ignored: game not ready")
		return false
	}
	if s.activeCharacter != ch {
		s.log.WithField("character_id", ch.CharacterID).Debug("Command ignored: not their turn")
		return false
	}
	if s.activeEncounter != nil {
		s.log.Debug("Command ignored: encounter choice pending")
		return false
	}
	return true
}

// unitStep - юнит одного шага. Перепроверяет все на момент выполнения:
// после Clear() или энкаунтера запланированные шаги могли протухнуть.
func (s *GameSession) unitStep(ch *domain.Character, dx, dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch != s.activeCharacter || s.activeEncounter != nil {
		return
	}

	res := systems.CalculateStep(s.World, ch, dx, dy)
	if !res.HasMoved {
		s.log.WithFields(logrus.Fields{
			"character_id": ch.CharacterID,
			"target":       res.NewPos,
		}).Debug("Step blocked")
		return
	}

	ch.Pos = res.NewPos
	ch.Stats.Movement.Current--
	systems.RecomputeLighting(s.World)

	if res.Encounter != nil && !res.Encounter.Triggered {
		// Оставшиеся шаги сгорают: персонаж наступил на событие
		s.Queue.Clear()
		s.lockedEnterEncounter(ch, res.Encounter)
		return
	}

	if !ch.CanMove() {
		s.Queue.Enqueue("turn:end", s.unitEndTurn)
	}
}

// --- ЭНКАУНТЕРЫ ---

// lockedEnterEncounter - персонаж наступил на клетку с энкаунтером.
func (s *GameSession) lockedEnterEncounter(ch *domain.Character, e *domain.Encounter) {
	if !systems.CanTriggerEncounter(e, ch) {
		// Условия не выполнены: энкаунтер спит дальше, ход продолжается
		s.log.WithField("encounter_id", e.EncounterID).Debug("Encounter dormant: conditions not met")
		s.lockedContinueTurn(ch)
		return
	}

	e.Triggered = true

	s.log.WithFields(logrus.Fields{
		"character_id": ch.CharacterID,
		"encounter_id": e.EncounterID,
		"template_id":  e.TemplateID,
	}).Info("Encounter triggered")

	// Безусловные эффекты применяются при активации, до выбора игрока:
	// какой бы исход он ни выбрал, цена входа уже уплачена
	systems.ResolveTriggerList(e.Triggers, ch, s)

	if len(e.Actions) > 0 {
		// Ждем выбора игрока; очередь опустеет и State станет READY
		s.activeEncounter = e
		return
	}

	s.lockedFinishEncounter(e)
	s.lockedContinueTurn(ch)
}

// ChooseEncounterAction валидирует выбор игрока и планирует разрешение.
// Выбор адресован конкретному энкаунтеру: опоздавшая команда, нацеленная
// на уже закрытый энкаунтер, не может зацепить совпадающий ID варианта
// в новом.
func (s *GameSession) ChooseEncounterAction(ch *domain.Character, encounterID, actionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch == nil || s.State != domain.GameStateReady || s.activeCharacter != ch {
		s.log.Debug("CHOOSE_ACTION ignored: not their turn")
		return
	}

	e := s.activeEncounter
	if e == nil {
		s.log.Debug("CHOOSE_ACTION ignored: no encounter pending")
		return
	}
	if e.EncounterID != encounterID {
		s.log.WithFields(logrus.Fields{
			"encounter_id": encounterID,
			"active_id":    e.EncounterID,
		}).Debug("CHOOSE_ACTION ignored: stale encounter")
		return
	}

	act := e.FindAction(actionID)
	if act == nil {
		s.log.WithField("action_id", actionID).Debug("CHOOSE_ACTION ignored: unknown action")
		return
	}
	if !systems.MeetsAllConditions(ch, act.Conditions) {
		s.log.WithField("action_id", actionID).Debug("CHOOSE_ACTION ignored: conditions not met")
		return
	}

	s.State = domain.GameStateWorking
	s.Queue.Enqueue("encounter:choose", func() { s.unitResolveChoice(ch, e, act) })
}

// unitResolveChoice - юнит разрешения выбора в энкаунтере.
func (s *GameSession) unitResolveChoice(ch *domain.Character, e *domain.Encounter, act *domain.EncounterAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeEncounter != e || s.activeCharacter != ch {
		return
	}

	// Сперва эффекты самого выбора
	systems.ResolveTriggerList(act.Triggers, ch, s)

	switch act.Type {
	case domain.EncounterActionGoto:
		s.activeEncounter = nil
		s.lockedFinishEncounter(e)

		tmpl, ok := mapgen.FindEncounterTemplate(act.GotoID)
		if !ok {
			s.log.WithField("goto_id", act.GotoID).Warn("GOTO target not in catalog, encounter closed")
			s.lockedContinueTurn(ch)
			return
		}

		// Продолжение - транзитный энкаунтер на той же клетке.
		// В мир он не регистрируется и живет только до выбора.
		// Его безусловные эффекты тоже применяются при активации.
		next := tmpl.Spawn(ch.Pos, s.Rng)
		next.Triggered = true
		systems.ResolveTriggerList(next.Triggers, ch, s)

		if len(next.Actions) == 0 {
			s.lockedContinueTurn(ch)
			return
		}
		s.activeEncounter = next

	default: // CONFIRM
		// Эффекты энкаунтера уже применены при активации
		s.activeEncounter = nil
		s.lockedFinishEncounter(e)
		s.lockedContinueTurn(ch)
	}
}

// lockedFinishEncounter закрывает энкаунтер: single-use уходит из мира.
func (s *GameSession) lockedFinishEncounter(e *domain.Encounter) {
	if e.SingleUse {
		e.MarkedForDeletion = true
		s.World.RemoveEncounter(e.EncounterID)
	}
	systems.RecomputeLighting(s.World)
}

// lockedContinueTurn завершает ход, если очки движения исчерпаны.
func (s *GameSession) lockedContinueTurn(ch *domain.Character) {
	if !ch.CanMove() {
		s.Queue.Enqueue("turn:end", s.unitEndTurn)
	}
}

// --- systems.TriggerEnvironment ---
// Оба метода вызываются из ResolveTriggerList, то есть под mu изнутри
// юнита очереди. Лок здесь брать нельзя.

// SpawnItem создает предмет по шаблону каталога, nil для неизвестного.
func (s *GameSession) SpawnItem(templateID string) *domain.Item {
	tmpl, ok := mapgen.ItemTemplates[templateID]
	if !ok {
		return nil
	}
	return tmpl.SpawnItem(s.Rng)
}

// RelocateCharacter телепортирует персонажа (эффект CHANGE_POSITION).
// Энкаунтер на целевой клетке срабатывает следующим юнитом.
func (s *GameSession) RelocateCharacter(ch *domain.Character, to grid.Point) {
	if !s.World.Tiles.IsWalkableAt(to) {
		s.log.WithField("to", to).Warn("CHANGE_POSITION target not walkable, ignored")
		return
	}

	ch.Pos = to
	systems.RecomputeLighting(s.World)

	if e := s.World.EncounterAt(to); e != nil && !e.Triggered {
		// Как и при шаге: попадание на событие сжигает запланированные ходы
		s.Queue.Clear()
		s.Queue.EnqueueFront("encounter:enter", func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.activeCharacter == ch && s.activeEncounter == nil {
				s.lockedEnterEncounter(ch, e)
			}
		})
	}
}
