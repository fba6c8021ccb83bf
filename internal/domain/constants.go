package domain

// GameState - фаза жизненного цикла игры.
type GameState string

const (
	// GameStateInactive - игра не запущена (или завершена).
	GameStateInactive GameState = "INACTIVE"
	// GameStateWorking - мутация в полете, ввод игроков не принимается.
	GameStateWorking GameState = "WORKING"
	// GameStateReady - ждем человека.
	GameStateReady GameState = "READY"
	// GameStatePaused - пауза. Достижима только из READY.
	GameStatePaused GameState = "PAUSED"
)

// StatType - имя характеристики персонажа.
type StatType string

const (
	StatHealth   StatType = "HEALTH"
	StatMovement StatType = "MOVEMENT"
	StatSanity   StatType = "SANITY"
	StatVision   StatType = "VISION"
	StatCandy    StatType = "CANDY" // валюта
	StatLuck     StatType = "LUCK"
	StatGreed    StatType = "GREED"
)

// ComparatorType - оператор условия.
type ComparatorType string

const (
	ComparatorEquals      ComparatorType = "EQUALS"
	ComparatorLessThan    ComparatorType = "LESS_THAN"
	ComparatorGreaterThan ComparatorType = "GREATER_THAN"
	ComparatorAtLocation  ComparatorType = "AT_LOCATION"
	ComparatorHasItem     ComparatorType = "HAS_ITEM"
)

// TriggerEffect - именованный эффект триггера энкаунтера.
type TriggerEffect string

const (
	TriggerAddCandy         TriggerEffect = "CANDY.ADD"
	TriggerSubtractCandy    TriggerEffect = "CANDY.SUBTRACT"
	TriggerAddHealth        TriggerEffect = "HEALTH.ADD"
	TriggerSubtractHealth   TriggerEffect = "HEALTH.SUBTRACT"
	TriggerAddMovement      TriggerEffect = "MOVEMENT.ADD"
	TriggerSubtractMovement TriggerEffect = "MOVEMENT.SUBTRACT"
	TriggerAddSanity        TriggerEffect = "SANITY.ADD"
	TriggerSubtractSanity   TriggerEffect = "SANITY.SUBTRACT"
	TriggerAddVision        TriggerEffect = "VISION.ADD"
	TriggerSubtractVision   TriggerEffect = "VISION.SUBTRACT"
	TriggerAddLuck          TriggerEffect = "LUCK.ADD"
	TriggerSubtractLuck     TriggerEffect = "LUCK.SUBTRACT"
	TriggerAddGreed         TriggerEffect = "GREED.ADD"
	TriggerSubtractGreed    TriggerEffect = "GREED.SUBTRACT"
	TriggerGiveItem         TriggerEffect = "GIVE_ITEM"
	TriggerChangePosition   TriggerEffect = "CHANGE_POSITION"
)

// EncounterActionType - тип выбираемого игроком исхода энкаунтера.
type EncounterActionType string

const (
	// EncounterActionConfirm закрывает энкаунтер.
	EncounterActionConfirm EncounterActionType = "CONFIRM"
	// EncounterActionGoto активирует другой энкаунтер по ID.
	EncounterActionGoto EncounterActionType = "GOTO"
)

// Rarity - редкость записи каталога энкаунтеров.
type Rarity string

const (
	RarityCommon   Rarity = "COMMON"
	RarityUncommon Rarity = "UNCOMMON"
	RarityRare     Rarity = "RARE"
)

// Веса редкостей для взвешенного выбора. Это относительные веса,
// нормализация не требуется.
var RarityWeights = map[Rarity]int{
	RarityCommon:   75,
	RarityUncommon: 20,
	RarityRare:     5,
}

// Базовые значения характеристик нового персонажа.
const (
	BaseHealth   = 10
	BaseMovement = 4
	BaseSanity   = 10
	BaseVision   = 5
	BaseCandy    = 0
	BaseLuck     = 0
	BaseGreed    = 0
)
