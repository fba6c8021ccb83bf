package domain

import (
	"trickntreat-server/pkg/grid"
)

// GameWorld - карта, освещение и индексы сущностей одной игровой сессии.
// Мутируется только изнутри очереди действий; читатели (снапшоты)
// всегда видят последнее зафиксированное состояние.
type GameWorld struct {
	Tiles *grid.Grid
	Light *grid.LightMap

	// EncounterRegistry: ID -> энкаунтер
	EncounterRegistry map[string]*Encounter
	// encounterAt: линейный индекс клетки -> энкаунтер (на клетке максимум один)
	encounterAt map[int]*Encounter

	Characters []*Character
}

// NewGameWorld создает пустой мир поверх готовой сетки.
func NewGameWorld(tiles *grid.Grid) *GameWorld {
	return &GameWorld{
		Tiles:             tiles,
		Light:             grid.NewLightMap(tiles.Width(), tiles.Height()),
		EncounterRegistry: make(map[string]*Encounter),
		encounterAt:       make(map[int]*Encounter),
		Characters:        []*Character{},
	}
}

// AddEncounter регистрирует энкаунтер в реестре и пространственном индексе.
func (w *GameWorld) AddEncounter(e *Encounter) {
	if e == nil {
		return
	}
	w.EncounterRegistry[e.EncounterID] = e
	w.encounterAt[w.Tiles.Index(e.Pos)] = e
}

// RemoveEncounter убирает энкаунтер из мира (после разрешения single-use).
func (w *GameWorld) RemoveEncounter(id string) {
	e, ok := w.EncounterRegistry[id]
	if !ok {
		return
	}
	delete(w.EncounterRegistry, id)
	idx := w.Tiles.Index(e.Pos)
	if w.encounterAt[idx] == e {
		delete(w.encounterAt, idx)
	}
}

// GetEncounter ищет энкаунтер по ID.
func (w *GameWorld) GetEncounter(id string) *Encounter {
	return w.EncounterRegistry[id]
}

// EncounterAt возвращает энкаунтер на клетке или nil.
func (w *GameWorld) EncounterAt(p grid.Point) *Encounter {
	if !w.Tiles.InBounds(p) {
		return nil
	}
	return w.encounterAt[w.Tiles.Index(p)]
}

// HasEncounterNear проверяет, есть ли энкаунтер в пределах dist шагов
// по манхэттену от точки. Дешевая проверка для генератора.
func (w *GameWorld) HasEncounterNear(p grid.Point, dist int) bool {
	for _, e := range w.EncounterRegistry {
		if p.TaxicabDistanceTo(e.Pos) <= dist {
			return true
		}
	}
	return false
}

// AddCharacter регистрирует персонажа в мире.
func (w *GameWorld) AddCharacter(c *Character) {
	w.Characters = append(w.Characters, c)
}

// GetCharacter ищет персонажа по ID, nil если не найден.
func (w *GameWorld) GetCharacter(id string) *Character {
	for _, c := range w.Characters {
		if c.CharacterID == id {
			return c
		}
	}
	return nil
}

// CharacterAt возвращает первого персонажа на клетке или nil.
func (w *GameWorld) CharacterAt(p grid.Point) *Character {
	for _, c := range w.Characters {
		if c.Pos.Equals(p) {
			return c
		}
	}
	return nil
}

// LightSources собирает стационарные источники света карты:
// светящиеся тайлы и светящиеся энкаунтеры.
func (w *GameWorld) LightSources() []LightSource {
	var sources []LightSource

	for y := 0; y < w.Tiles.Height(); y++ {
		for x := 0; x < w.Tiles.Width(); x++ {
			p := grid.Point{X: x, Y: y}
			if w.Tiles.At(p).IsLit() {
				sources = append(sources, LightSource{Pos: p, Radius: DefaultTileLightRadius})
			}
		}
	}

	for _, e := range w.EncounterRegistry {
		if e.IsLit {
			radius := e.LightRadius
			if radius <= 0 {
				radius = DefaultTileLightRadius
			}
			sources = append(sources, LightSource{Pos: e.Pos, Radius: radius})
		}
	}

	return sources
}

// LightSource - один источник света для прохода освещения.
// Источники взаимозаменяемы: освещенность клетки - максимум из вкладов,
// от порядка применения ничего не зависит.
type LightSource struct {
	Pos    grid.Point
	Radius int
}

// DefaultTileLightRadius - радиус света стационарного тайла (крыльцо).
const DefaultTileLightRadius = 3
