package mapgen

import (
	"math/rand"

	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
	"trickntreat-server/pkg/utils"
)

// EncounterTemplate - авторская запись каталога энкаунтеров.
// Spawn делает глубокую копию: экземпляры на карте мутируются независимо.
type EncounterTemplate struct {
	TemplateID string
	Title      string
	Text       string

	Rarity domain.Rarity

	// TileTags - на каких тайлах запись может появиться.
	// Пустой список - на любых проходимых.
	TileTags []grid.Tile

	IsLit       bool
	LightRadius int
	SingleUse   bool

	Conditions []domain.Condition
	Actions    []domain.EncounterAction
	Triggers   []domain.Trigger
}

// MatchesTile проверяет, подходит ли запись для тайла.
func (t EncounterTemplate) MatchesTile(tile grid.Tile) bool {
	if len(t.TileTags) == 0 {
		return true
	}
	for _, tag := range t.TileTags {
		if tag == tile {
			return true
		}
	}
	return false
}

// Spawn создает экземпляр энкаунтера на клетке.
func (t EncounterTemplate) Spawn(pos grid.Point, rng *rand.Rand) *domain.Encounter {
	e := &domain.Encounter{
		EncounterID: utils.GenerateDeterministicID(rng, "enc_"),
		TemplateID:  t.TemplateID,
		Pos:         pos,
		Title:       t.Title,
		Text:        t.Text,
		IsLit:       t.IsLit,
		LightRadius: t.LightRadius,
		SingleUse:   t.SingleUse,
	}
	e.Conditions = append([]domain.Condition(nil), t.Conditions...)
	e.Actions = append([]domain.EncounterAction(nil), t.Actions...)
	e.Triggers = append([]domain.Trigger(nil), t.Triggers...)
	return e
}

// ItemTemplate - авторская запись предмета (выдается GIVE_ITEM).
type ItemTemplate struct {
	TemplateID  string
	Name        string
	Description string
}

// SpawnItem создает экземпляр предмета.
func (t ItemTemplate) SpawnItem(rng *rand.Rand) *domain.Item {
	return &domain.Item{
		ID:          utils.GenerateDeterministicID(rng, "item_"),
		TemplateID:  t.TemplateID,
		Name:        t.Name,
		Description: t.Description,
	}
}

// --- ПРЕДМЕТЫ ---

var ItemTemplates = map[string]ItemTemplate{
	"flashlight": {
		TemplateID:  "flashlight",
		Name:        "Фонарик",
		Description: "Луч выхватывает из темноты чуть больше, чем хотелось бы увидеть.",
	},
	"lucky_coin": {
		TemplateID:  "lucky_coin",
		Name:        "Счастливая монетка",
		Description: "Теплая на ощупь. Наверное, это хорошо.",
	},
	"candy_bag": {
		TemplateID:  "candy_bag",
		Name:        "Мешок для конфет",
		Description: "Вмещает больше, чем кажется снаружи.",
	},
}

// --- ЭНКАУНТЕРЫ ---

// EncounterCatalog - каталог, из которого генератор делает взвешенный
// выбор. Порядок записей не важен: выбор по весам редкости.
var EncounterCatalog = []EncounterTemplate{
	{
		TemplateID: "porch_treat",
		Title:      "Светящееся крыльцо",
		Text:       "На крыльце горит тыква. Дверь открывается, не дожидаясь звонка.",
		Rarity:     domain.RarityCommon,
		TileTags:   []grid.Tile{grid.TilePorch},
		IsLit:      true, LightRadius: 4,
		SingleUse: true,
		Actions: []domain.EncounterAction{
			{ActionID: "take", Label: "Взять конфеты", Type: domain.EncounterActionConfirm},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerAddCandy, Value: 3},
		},
	},
	{
		TemplateID: "porch_trick",
		Title:      "Темное крыльцо",
		Text:       "Свет не горит, но за дверью кто-то дышит.",
		Rarity:     domain.RarityUncommon,
		TileTags:   []grid.Tile{grid.TilePorch, grid.TileGrass},
		SingleUse:  true,
		Actions: []domain.EncounterAction{
			{ActionID: "knock", Label: "Постучать", Type: domain.EncounterActionConfirm},
			{
				ActionID: "run", Label: "Убежать", Type: domain.EncounterActionConfirm,
				Conditions: []domain.Condition{
					{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatMovement, Value: 0},
				},
			},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerSubtractSanity, Value: 1},
		},
	},
	{
		TemplateID: "sidewalk_spill",
		Title:      "Рассыпанные конфеты",
		Text:       "Кто-то уронил добычу. Хозяина не видно.",
		Rarity:     domain.RarityCommon,
		TileTags:   []grid.Tile{grid.TileSidewalk, grid.TileRoad, grid.TilePath},
		SingleUse:  true,
		Actions: []domain.EncounterAction{
			{ActionID: "scoop", Label: "Собрать", Type: domain.EncounterActionConfirm},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerAddCandy, Value: 1},
			{Effect: domain.TriggerAddGreed, Value: 1},
		},
	},
	{
		TemplateID: "black_cat",
		Title:      "Черная кошка",
		Text:       "Перебегает дорогу. Смотрит. Решает, что вы не стоите внимания.",
		Rarity:     domain.RarityCommon,
		SingleUse:  true,
		Actions: []domain.EncounterAction{
			{ActionID: "ok", Label: "Пройти мимо", Type: domain.EncounterActionConfirm},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerSubtractLuck, Value: 1},
		},
	},
	{
		TemplateID: "grave_whisper",
		Title:      "Шепот у надгробия",
		Text:       "Имя на камне стерто, но кто-то все еще отзывается на него.",
		Rarity:     domain.RarityUncommon,
		TileTags:   []grid.Tile{grid.TileDirt},
		SingleUse:  true,
		Actions: []domain.EncounterAction{
			{ActionID: "listen", Label: "Прислушаться", Type: domain.EncounterActionConfirm},
			{
				ActionID: "brave", Label: "Ответить", Type: domain.EncounterActionGoto, GotoID: "grave_answer",
				Conditions: []domain.Condition{
					{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatSanity, Value: 3},
				},
			},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerSubtractSanity, Value: 2},
		},
	},
	{
		TemplateID: "grave_answer",
		Title:      "Ответ",
		Text:       "Холодная ладонь вкладывает что-то в вашу руку.",
		Rarity:     domain.RarityRare,
		TileTags:   []grid.Tile{grid.TileDirt},
		SingleUse:  true,
		Actions: []domain.EncounterAction{
			{ActionID: "accept", Label: "Принять", Type: domain.EncounterActionConfirm},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerGiveItem, ItemID: "lucky_coin"},
			{Effect: domain.TriggerAddLuck, Value: 2},
		},
	},
	{
		TemplateID: "woods_lantern",
		Title:      "Забытый фонарь",
		Text:       "Висит на ветке и горит, хотя масла в нем давно нет.",
		Rarity:     domain.RarityUncommon,
		TileTags:   []grid.Tile{grid.TileGrass},
		IsLit:      true, LightRadius: 5,
		SingleUse: true,
		Actions: []domain.EncounterAction{
			{ActionID: "take", Label: "Снять фонарь", Type: domain.EncounterActionConfirm},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerGiveItem, ItemID: "flashlight"},
			{Effect: domain.TriggerAddVision, Value: 1},
		},
	},
	{
		TemplateID: "woods_lost",
		Title:      "Тропа петляет",
		Text:       "Вы точно здесь уже проходили. Дважды.",
		Rarity:     domain.RarityCommon,
		TileTags:   []grid.Tile{grid.TileGrass, grid.TileDirt},
		SingleUse:  true,
		Actions: []domain.EncounterAction{
			{ActionID: "push", Label: "Идти дальше", Type: domain.EncounterActionConfirm},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerSubtractMovement, Value: 1},
		},
	},
	{
		TemplateID: "greedy_gnome",
		Title:      "Садовый гном",
		Text:       "Гипсовый гном держит табличку: 'ПОДЕЛИСЬ'.",
		Rarity:     domain.RarityRare,
		SingleUse:  true,
		Actions: []domain.EncounterAction{
			{
				ActionID: "pay", Label: "Оставить конфету", Type: domain.EncounterActionConfirm,
				Conditions: []domain.Condition{
					{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatCandy, Value: 0},
				},
				Triggers: []domain.Trigger{
					{Effect: domain.TriggerSubtractCandy, Value: 1},
					{Effect: domain.TriggerAddLuck, Value: 1},
				},
			},
			{ActionID: "ignore", Label: "Пройти мимо", Type: domain.EncounterActionConfirm},
		},
	},
	{
		TemplateID: "sugar_rush",
		Title:      "Сахарная лихорадка",
		Text:       "Ноги сами несут вас дальше по улице.",
		Rarity:     domain.RarityRare,
		Conditions: []domain.Condition{
			{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatCandy, Value: 4},
		},
		SingleUse: true,
		Actions: []domain.EncounterAction{
			{ActionID: "go", Label: "Бежать!", Type: domain.EncounterActionConfirm},
		},
		Triggers: []domain.Trigger{
			{Effect: domain.TriggerAddMovement, Value: 2},
		},
	},
}

// FindEncounterTemplate ищет запись каталога по ID (для GOTO).
func FindEncounterTemplate(templateID string) (EncounterTemplate, bool) {
	for _, t := range EncounterCatalog {
		if t.TemplateID == templateID {
			return t, true
		}
	}
	return EncounterTemplate{}, false
}
