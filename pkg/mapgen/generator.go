package mapgen

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
	"trickntreat-server/pkg/logger"
	"trickntreat-server/pkg/pathfind"
)

// Config - параметры генерации карты.
type Config struct {
	Width  int
	Height int

	Biomes []BiomeSettings

	// EncounterChance - шанс энкаунтера на обычной проходимой клетке.
	EncounterChance float64
	// GuaranteeDistance - если в этом путевом радиусе энкаунтеров нет,
	// клетка получает энкаунтер гарантированно.
	GuaranteeDistance int
	// DecorChance - шанс декорации на непроходимой клетке.
	DecorChance float64
}

// DefaultConfig - карта на три биома: квартал в центре, кладбище в
// северо-западном углу, лес на юго-востоке.
func DefaultConfig() Config {
	return Config{
		Width:  60,
		Height: 40,
		Biomes: []BiomeSettings{
			{Type: BiomeNeighborhood, Width: 25, Height: 16, Origin: grid.Point{X: 18, Y: 12}, NumHouses: 8, SearchRadius: 12},
			{Type: BiomeGraveyard, Width: 12, Height: 10, Origin: grid.Point{X: 2, Y: 2}, Density: 0.6, SearchRadius: 20},
			{Type: BiomeWoods, Width: 14, Height: 12, Origin: grid.Point{X: 44, Y: 26}, Density: 0.7, SearchRadius: 20},
		},
		EncounterChance:   0.08,
		GuaranteeDistance: 4,
		DecorChance:       0.05,
	}
}

// Generator строит мир из конфига и локального генератора случайностей.
type Generator struct {
	cfg Config
	rng *rand.Rand
	log *logrus.Entry
}

// NewGenerator создает генератор. rng обязателен - глобальный рандом
// не используется, чтобы карта воспроизводилась по сиду.
func NewGenerator(cfg Config, rng *rand.Rand) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rng,
		log: logger.WithComponent("mapgen"),
	}
}

// Generate создает мир: биомы -> соединение тропами -> энкаунтеры.
// Возвращает мир, диагностику биомов и стартовую точку персонажей.
func (g *Generator) Generate() (*domain.GameWorld, BiomeList, grid.Point) {
	base := grid.New(g.cfg.Width, g.cfg.Height, grid.TileEmpty)
	var records BiomeList

	for i, settings := range g.cfg.Biomes {
		record := g.placeBiome(base, settings, i > 0)
		records = append(records, record)
	}

	world := domain.NewGameWorld(base)
	g.placeEntities(world)

	start := g.pickStart(base, records)

	g.log.WithFields(logrus.Fields{
		"biomes":     len(records),
		"encounters": len(world.EncounterRegistry),
		"start":      start,
	}).Info("Map generated")

	return world, records, start
}

// placeBiome генерирует модель биома, находит точку подключения,
// прокладывает тропу до основной карты и мержит модель.
func (g *Generator) placeBiome(base *grid.Grid, settings BiomeSettings, connect bool) BiomeRecord {
	model := generateBiome(settings, g.rng)

	borders := model.BorderPoints()
	record := BiomeRecord{Settings: settings, BorderPoints: borders}

	if len(borders) == 0 {
		// Биом без проходимых клеток - мержим как есть и идем дальше
		g.log.WithField("biome", settings.Type).Warn("Biome has no border points, skipping connection")
		base.Merge(model.Tiles, settings.Origin)
		return record
	}

	// Точка подключения - случайная граничная клетка (в глобальных координатах)
	local := borders[g.rng.Intn(len(borders))]
	connecting := grid.Point{X: settings.Origin.X + local.X, Y: settings.Origin.Y + local.Y}
	record.ConnectingPoint = connecting

	// Сперва мерж: тропу прокладываем уже по основной карте
	base.Merge(model.Tiles, settings.Origin)

	if !connect {
		return record
	}

	g.connectToMap(base, connecting, settings.SearchRadius)
	return record
}

// connectToMap прокладывает тропу от точки подключения биома до
// ближайшей уже проходимой клетки основной карты.
func (g *Generator) connectToMap(base *grid.Grid, from grid.Point, searchRadius int) {
	target, found := g.nearestWalkableOutside(base, from, searchRadius)
	if !found {
		g.log.WithField("from", from).Warn("No walkable cell within search radius, biome left unconnected")
		return
	}

	// Тропу можно вести по пустым клеткам, но не сквозь стены
	path := pathfind.ShortestPathFiltered(base, from, target, pathfind.Carvable)
	if len(path) == 0 {
		g.log.WithFields(logrus.Fields{"from": from, "to": target}).Warn("No carvable path between biomes")
		return
	}

	for _, p := range path {
		if !base.At(p).IsWalkable() {
			base.Set(p, grid.TilePath)
		}
	}
}

// nearestWalkableOutside ищет ближайшую проходимую клетку, не являющуюся
// самой точкой подключения, кольцами растущего манхэттенского радиуса.
func (g *Generator) nearestWalkableOutside(base *grid.Grid, from grid.Point, searchRadius int) (grid.Point, bool) {
	for r := 1; r <= searchRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				p := from.Shift(dx, dy)
				if from.TaxicabDistanceTo(p) != r {
					continue
				}
				if base.IsWalkableAt(p) && !g.sameRegion(base, from, p) {
					return p, true
				}
			}
		}
	}
	return grid.Point{}, false
}

// sameRegion - уже связаны ли точки пешим путем. Соединять биом с самим
// собой бессмысленно.
func (g *Generator) sameRegion(base *grid.Grid, a, b grid.Point) bool {
	return pathfind.PathDistance(base, a, b) != pathfind.Unreachable
}

// placeEntities - финальный проход по всем клеткам: гарантированные и
// случайные энкаунтеры на проходимых, декорации на части непроходимых.
func (g *Generator) placeEntities(world *domain.GameWorld) {
	tiles := world.Tiles

	for y := 0; y < tiles.Height(); y++ {
		for x := 0; x < tiles.Width(); x++ {
			p := grid.Point{X: x, Y: y}
			tile := tiles.At(p)

			if tile.IsWalkable() {
				g.maybePlaceEncounter(world, p, tile)
				continue
			}

			// Декорации - только на "обычных" стенах
			if tile == grid.TileWall || tile == grid.TileTree {
				if g.rng.Float64() < g.cfg.DecorChance {
					tiles.Set(p, grid.TileDecor)
				}
			}
		}
	}
}

func (g *Generator) maybePlaceEncounter(world *domain.GameWorld, p grid.Point, tile grid.Tile) {
	guaranteed := !g.hasEncounterWithin(world, p, g.cfg.GuaranteeDistance)
	if !guaranteed && g.rng.Float64() >= g.cfg.EncounterChance {
		return
	}

	template, ok := g.pickEncounter(tile)
	if !ok {
		// Ни одна запись каталога не подошла - молча пропускаем,
		// это штатная ситуация, а не ошибка.
		return
	}

	world.AddEncounter(template.Spawn(p, g.rng))
}

// hasEncounterWithin - есть ли энкаунтер в путевом радиусе от клетки.
// Манхэттен здесь недостаточен: за стеной энкаунтер "рядом", но дойти
// до него далеко.
func (g *Generator) hasEncounterWithin(world *domain.GameWorld, p grid.Point, dist int) bool {
	// Манхэттен - нижняя граница пути: если нет энкаунтера даже по
	// прямой, BFS запускать незачем
	if !world.HasEncounterNear(p, dist) {
		return false
	}

	for _, cell := range pathfind.CellsWithinDistance(world.Tiles, p, dist) {
		if world.EncounterAt(cell) != nil {
			return true
		}
	}
	return false
}

// pickEncounter - взвешенный выбор из каталога по тайлу и весам редкости.
func (g *Generator) pickEncounter(tile grid.Tile) (EncounterTemplate, bool) {
	var candidates []EncounterTemplate
	total := 0
	for _, t := range EncounterCatalog {
		if !t.MatchesTile(tile) {
			continue
		}
		candidates = append(candidates, t)
		total += domain.RarityWeights[t.Rarity]
	}

	if len(candidates) == 0 || total <= 0 {
		return EncounterTemplate{}, false
	}

	roll := g.rng.Intn(total)
	for _, t := range candidates {
		roll -= domain.RarityWeights[t.Rarity]
		if roll < 0 {
			return t, true
		}
	}
	// Недостижимо при корректных весах
	return candidates[len(candidates)-1], true
}

// pickStart выбирает стартовую точку персонажей: проходимая клетка
// ближе всего к центру первого биома (жилой квартал).
func (g *Generator) pickStart(base *grid.Grid, records BiomeList) grid.Point {
	center := grid.Point{X: base.Width() / 2, Y: base.Height() / 2}
	if len(records) > 0 {
		s := records[0].Settings
		center = grid.Point{X: s.Origin.X + s.Width/2, Y: s.Origin.Y + s.Height/2}
	}

	if start, ok := pathfind.NearestWalkable(base, center, base.Width()+base.Height()); ok {
		return start
	}
	return center
}
