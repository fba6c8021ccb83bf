package systems

import (
	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
	"trickntreat-server/pkg/logger"
)

// TriggerEnvironment - то, что нужно триггерам помимо статов персонажа.
// Реализуется игровой сессией: перемещение тянет за собой пересчет
// освещения и проверку энкаунтеров, создание предмета - каталог.
type TriggerEnvironment interface {
	SpawnItem(templateID string) *domain.Item
	RelocateCharacter(ch *domain.Character, to grid.Point)
}

// EvalCondition вычисляет одно условие над персонажем.
// Неизвестный компаратор проваливается закрыто (false): лучше спрятать
// энкаунтер, чем активировать его по мусорным данным.
func EvalCondition(c domain.Condition, ch *domain.Character) bool {
	switch c.Comparator {
	case domain.ComparatorEquals:
		stat := ch.Stats.Get(c.Stat)
		return stat != nil && stat.Current == c.Value

	case domain.ComparatorLessThan:
		stat := ch.Stats.Get(c.Stat)
		return stat != nil && stat.Current < c.Value

	case domain.ComparatorGreaterThan:
		stat := ch.Stats.Get(c.Stat)
		return stat != nil && stat.Current > c.Value

	case domain.ComparatorHasItem:
		return ch.HasItem(c.ItemID)

	case domain.ComparatorAtLocation:
		return c.Location != nil && ch.Pos.Equals(*c.Location)

	default:
		logger.WithComponent("rules").
			WithField("comparator", c.Comparator).
			Warn("Unknown comparator, condition fails closed")
		return false
	}
}

// MeetsAllConditions возвращает true, если выполнены ВСЕ условия списка.
// Пустой список - истина.
func MeetsAllConditions(ch *domain.Character, conditions []domain.Condition) bool {
	for _, c := range conditions {
		if !EvalCondition(c, ch) {
			return false
		}
	}
	return true
}

// CanTriggerEncounter - гейт активации: собственный список условий энкаунтера.
func CanTriggerEncounter(e *domain.Encounter, ch *domain.Character) bool {
	return MeetsAllConditions(ch, e.Conditions)
}

// ResolveTriggerList применяет триггеры в объявленном порядке.
// Каждый триггер сперва перепроверяет свои условия: поздний триггер
// видит мутации ранних в том же списке.
func ResolveTriggerList(triggers []domain.Trigger, ch *domain.Character, env TriggerEnvironment) {
	for _, tr := range triggers {
		if !MeetsAllConditions(ch, tr.Conditions) {
			continue
		}
		applyTrigger(tr, ch, env)
	}
}

// applyTrigger диспатчит один эффект. Статы не клампятся: current ± value,
// и всё.
func applyTrigger(tr domain.Trigger, ch *domain.Character, env TriggerEnvironment) {
	rulesLogger := logger.WithComponent("rules").WithField("effect", tr.Effect)

	addToStat := func(t domain.StatType, delta int) {
		stat := ch.Stats.Get(t)
		if stat == nil {
			return
		}
		stat.Current += delta
	}

	switch tr.Effect {
	case domain.TriggerAddCandy:
		addToStat(domain.StatCandy, tr.Value)
	case domain.TriggerSubtractCandy:
		addToStat(domain.StatCandy, -tr.Value)
	case domain.TriggerAddHealth:
		addToStat(domain.StatHealth, tr.Value)
	case domain.TriggerSubtractHealth:
		addToStat(domain.StatHealth, -tr.Value)
	case domain.TriggerAddMovement:
		addToStat(domain.StatMovement, tr.Value)
	case domain.TriggerSubtractMovement:
		addToStat(domain.StatMovement, -tr.Value)
	case domain.TriggerAddSanity:
		addToStat(domain.StatSanity, tr.Value)
	case domain.TriggerSubtractSanity:
		addToStat(domain.StatSanity, -tr.Value)
	case domain.TriggerAddVision:
		addToStat(domain.StatVision, tr.Value)
	case domain.TriggerSubtractVision:
		addToStat(domain.StatVision, -tr.Value)
	case domain.TriggerAddLuck:
		addToStat(domain.StatLuck, tr.Value)
	case domain.TriggerSubtractLuck:
		addToStat(domain.StatLuck, -tr.Value)
	case domain.TriggerAddGreed:
		addToStat(domain.StatGreed, tr.Value)
	case domain.TriggerSubtractGreed:
		addToStat(domain.StatGreed, -tr.Value)

	case domain.TriggerGiveItem:
		if env == nil {
			return
		}
		item := env.SpawnItem(tr.ItemID)
		if item == nil {
			rulesLogger.WithField("item_id", tr.ItemID).Warn("Unknown item template, GIVE_ITEM skipped")
			return
		}
		ch.AddItem(item)

	case domain.TriggerChangePosition:
		if env == nil || tr.TargetPos == nil {
			return
		}
		// Телепорт идет через сессию: за ним следуют пересчет света
		// и проверка энкаунтера на новой клетке.
		env.RelocateCharacter(ch, *tr.TargetPos)

	default:
		rulesLogger.Warn("Unknown trigger effect ignored")
	}
}
