package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" мира с точки зрения конкретного
// персонажа. Отправляется после каждого завершенного действия.
type ServerResponse struct {
	// Type тип сообщения: UPDATE, ENCOUNTER, GAME_STATE.
	Type string `json:"type"`

	// Round номер текущего раунда. Увеличивается, когда все походили.
	Round int `json:"round"`

	// GameState текущая фаза игры: INACTIVE, WORKING, READY, PAUSED.
	GameState string `json:"gameState,omitempty"`

	// ActiveCharacterID ID персонажа, чей ход сейчас.
	// КЛИЕНТ ДОЛЖЕН СРАВНИВАТЬ ЭТО ПОЛЕ СО СВОИМ ID. Если они совпадают,
	// значит, можно принимать ввод от игрока.
	ActiveCharacterID string `json:"activeCharacterId,omitempty"`

	// MyCharacterID ID персонажа, которым управляет данный клиент.
	MyCharacterID string `json:"myCharacterId,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех видимых (освещенных) тайлов.
	Map []TileView `json:"map,omitempty"`

	// Characters срез всех видимых персонажей.
	Characters []CharacterView `json:"characters,omitempty"`

	// Encounter активный энкаунтер, если клиент сейчас должен сделать выбор.
	Encounter *EncounterView `json:"encounter,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Tile имя типа тайла (e.g. "SIDEWALK", "HOUSE").
	Tile string `json:"tile"`

	// LightLevel уровень освещенности 0..10. Ноль клиенту не отправляется:
	// невидимые тайлы в снимок не попадают вовсе.
	LightLevel int `json:"lightLevel"`

	// IsWalkable true, если по тайлу можно ходить.
	IsWalkable bool `json:"isWalkable"`

	// HasEncounter true, если на тайле есть энкаунтер. Содержимое
	// энкаунтера клиент узнает только наступив на клетку.
	HasEncounter bool `json:"hasEncounter,omitempty"`
}

// CharacterView это DTO для персонажа.
type CharacterView struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	// IsActive true, если сейчас ход этого персонажа.
	IsActive bool `json:"isActive"`

	// Stats характеристики. Поле может отсутствовать (omitempty):
	// чужие статы клиенту не отправляются.
	Stats *StatsView `json:"stats,omitempty"`

	// Inventory инвентарь (только свой).
	Inventory []ItemView `json:"inventory,omitempty"`
}

// StatsView это DTO для характеристик персонажа. Каждая пара - текущее
// значение и база, к которой стат возвращается при сбросе.
type StatsView struct {
	Health       int `json:"health"`
	HealthBase   int `json:"healthBase"`
	Movement     int `json:"movement"`
	MovementBase int `json:"movementBase"`
	Sanity       int `json:"sanity"`
	SanityBase   int `json:"sanityBase"`
	Vision       int `json:"vision"`
	VisionBase   int `json:"visionBase"`
	Candy        int `json:"candy"`
	Luck         int `json:"luck"`
	Greed        int `json:"greed"`
}

// ItemView представляет предмет инвентаря для клиента.
type ItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// EncounterView это DTO активного энкаунтера: текст и доступные действия.
type EncounterView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`

	Actions []EncounterActionView `json:"actions"`
}

// EncounterActionView - один вариант выбора в энкаунтере.
type EncounterActionView struct {
	ActionID string `json:"actionId"`
	Label    string `json:"label"`

	// DoesMeetConditions false, если условия действия не выполнены.
	// Клиент рендерит такую кнопку неактивной; сервер выбор все равно
	// отклонит.
	DoesMeetConditions bool `json:"doesMeetConditions"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token имя персонажа. Обязателен только для первого сообщения "JOIN".
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// MoveToPayload используется для MOVE_TO: перемещение к точке на карте
// в пределах оставшихся очков движения.
type MoveToPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ChoicePayload используется для CHOOSE_ACTION: выбор варианта в
// активном энкаунтере. EncounterID обязателен: выбор, адресованный уже
// закрытому энкаунтеру, сервер отбрасывает.
type ChoicePayload struct {
	EncounterID string `json:"encounterId"`
	ActionID    string `json:"actionId"`
}
