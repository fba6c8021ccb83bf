package domain

import (
	"trickntreat-server/pkg/grid"
)

// Condition - предикат над персонажем: стат против литерала, проверка
// предмета или позиции. Пустой список условий везде трактуется как
// "условие выполнено".
type Condition struct {
	Comparator ComparatorType `json:"comparator"`

	// Для EQUALS / LESS_THAN / GREATER_THAN
	Stat  StatType `json:"stat,omitempty"`
	Value int      `json:"value,omitempty"`

	// Для HAS_ITEM
	ItemID string `json:"itemId,omitempty"`

	// Для AT_LOCATION
	Location *grid.Point `json:"location,omitempty"`
}

// Trigger - один декларативный эффект, применяемый при активации
// энкаунтера, если его собственные условия выполнены.
type Trigger struct {
	Effect TriggerEffect `json:"effect"`
	Value  int           `json:"value,omitempty"`

	// Для GIVE_ITEM
	ItemID string `json:"itemId,omitempty"`

	// Для CHANGE_POSITION
	TargetPos *grid.Point `json:"targetPos,omitempty"`

	Conditions []Condition `json:"conditions,omitempty"`
}

// EncounterAction - выбираемый игроком исход энкаунтера.
// Условия гейтят доступность кнопки на клиенте (DoesMeetConditions в DTO).
type EncounterAction struct {
	ActionID string              `json:"actionId"`
	Label    string              `json:"label"`
	Type     EncounterActionType `json:"type"`

	// GotoID - ID энкаунтера для активации (только Type == GOTO).
	GotoID string `json:"gotoId,omitempty"`

	Conditions []Condition `json:"conditions,omitempty"`

	// Triggers применяются при выборе этого исхода.
	Triggers []Trigger `json:"triggers,omitempty"`
}

// Encounter - привязанное к клетке скриптованное событие.
// Срабатывает не более одного раза за подход, пока его явно не
// реактивируют действием GOTO.
type Encounter struct {
	EncounterID string `json:"encounterId"`
	TemplateID  string `json:"templateId"`

	Pos grid.Point `json:"pos"`

	// Контент (для ядра непрозрачен, уходит клиенту как есть)
	Title string `json:"title"`
	Text  string `json:"text"`

	// Условия видимости/активируемости всего энкаунтера.
	Conditions []Condition `json:"conditions,omitempty"`

	// Упорядоченные исходы и безусловные (с собственным гейтом) эффекты.
	Actions  []EncounterAction `json:"actions,omitempty"`
	Triggers []Trigger         `json:"triggers,omitempty"`

	// Источник света (фонарь на крыльце, костер).
	IsLit       bool `json:"isLit,omitempty"`
	LightRadius int  `json:"lightRadius,omitempty"`

	// SingleUse - удалить после разрешения.
	SingleUse bool `json:"singleUse,omitempty"`

	Triggered         bool `json:"triggered"`
	MarkedForDeletion bool `json:"-"`
}

// FindAction ищет исход по ID, nil если не найден.
func (e *Encounter) FindAction(actionID string) *EncounterAction {
	for i := range e.Actions {
		if e.Actions[i].ActionID == actionID {
			return &e.Actions[i]
		}
	}
	return nil
}
