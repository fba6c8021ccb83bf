package domain

import (
	"trickntreat-server/pkg/grid"
)

// Stat - пара "базовое значение / живое значение".
// Живое значение может уходить в минус: правила игры не клампят статы,
// кроме тех мест, где это задано явно (см. systems/rules).
type Stat struct {
	Base    int `json:"base"`
	Current int `json:"current"`
}

// NewStat создает стат, у которого живое значение равно базовому.
func NewStat(base int) Stat {
	return Stat{Base: base, Current: base}
}

// ResetToBase возвращает живое значение к базовому (конец хода для movement).
func (s *Stat) ResetToBase() {
	s.Current = s.Base
}

// StatsComponent - фиксированный набор характеристик персонажа.
type StatsComponent struct {
	Health   Stat `json:"health"`
	Movement Stat `json:"movement"`
	Sanity   Stat `json:"sanity"`
	Vision   Stat `json:"vision"`
	Candy    Stat `json:"candy"`
	Luck     Stat `json:"luck"`
	Greed    Stat `json:"greed"`
}

// NewBaseStats создает статы нового персонажа.
func NewBaseStats() *StatsComponent {
	return &StatsComponent{
		Health:   NewStat(BaseHealth),
		Movement: NewStat(BaseMovement),
		Sanity:   NewStat(BaseSanity),
		Vision:   NewStat(BaseVision),
		Candy:    NewStat(BaseCandy),
		Luck:     NewStat(BaseLuck),
		Greed:    NewStat(BaseGreed),
	}
}

// Get возвращает указатель на стат по имени, nil для неизвестного имени.
func (s *StatsComponent) Get(t StatType) *Stat {
	switch t {
	case StatHealth:
		return &s.Health
	case StatMovement:
		return &s.Movement
	case StatSanity:
		return &s.Sanity
	case StatVision:
		return &s.Vision
	case StatCandy:
		return &s.Candy
	case StatLuck:
		return &s.Luck
	case StatGreed:
		return &s.Greed
	}
	return nil
}

// Item - предмет в инвентаре. Выдается триггерами энкаунтеров.
type Item struct {
	ID          string `json:"id"`
	TemplateID  string `json:"templateId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Character - персонаж, которым управляет подключенный клиент.
type Character struct {
	// Идентификация
	CharacterID string `json:"characterId"`
	Name        string `json:"name"`

	// SessionID - ID клиентской сессии, владеющей персонажем.
	// Транспортный слой уже аутентифицировал вызывающего.
	SessionID string `json:"sessionId,omitempty"`

	Pos grid.Point `json:"pos"`

	Stats *StatsComponent `json:"stats"`

	// Inventory - упорядоченный список предметов.
	Inventory []*Item `json:"inventory"`

	// IsActive - сейчас ход этого персонажа.
	IsActive bool `json:"isActive"`
}

// NewCharacter создает персонажа с базовыми статами и пустым инвентарем.
func NewCharacter(id, name, sessionID string) *Character {
	return &Character{
		CharacterID: id,
		Name:        name,
		SessionID:   sessionID,
		Stats:       NewBaseStats(),
		Inventory:   []*Item{},
	}
}

// HasItem проверяет наличие предмета по ID шаблона.
func (c *Character) HasItem(templateID string) bool {
	for _, item := range c.Inventory {
		if item != nil && item.TemplateID == templateID {
			return true
		}
	}
	return false
}

// AddItem добавляет предмет в конец инвентаря.
func (c *Character) AddItem(item *Item) {
	if item == nil {
		return
	}
	c.Inventory = append(c.Inventory, item)
}

// CanMove возвращает true, пока у персонажа остались очки движения.
func (c *Character) CanMove() bool {
	return c.Stats.Movement.Current > 0
}
