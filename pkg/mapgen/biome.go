// Package mapgen собирает игровую карту из независимо сгенерированных
// биомов, соединяет их тропами и расставляет энкаунтеры из каталога.
package mapgen

import (
	"math/rand"

	"trickntreat-server/pkg/grid"
)

// BiomeType - вид биома.
type BiomeType string

const (
	BiomeNeighborhood BiomeType = "NEIGHBORHOOD"
	BiomeGraveyard    BiomeType = "GRAVEYARD"
	BiomeWoods        BiomeType = "WOODS"
)

// BiomeSettings - параметры генерации одного биома.
type BiomeSettings struct {
	Type   BiomeType
	Width  int
	Height int

	// Origin - смещение биома на основной карте (левый верхний угол).
	Origin grid.Point

	// NumHouses - масштаб застройки (только NEIGHBORHOOD).
	NumHouses int

	// Density - доля проходимых клеток для "сплаттерных" биомов (0..1).
	Density float64

	// SearchRadius - в каком радиусе вокруг точки подключения искать
	// уже проходимую клетку основной карты.
	SearchRadius int
}

// BiomeModel - самодостаточный под-грид биома до мержа в основную карту.
// Клетки TileUndefined - "нет данных", при мерже они не затирают основу.
type BiomeModel struct {
	Settings BiomeSettings
	Tiles    *grid.Grid
}

// generateBiome диспатчит генерацию по типу биома.
func generateBiome(settings BiomeSettings, rng *rand.Rand) *BiomeModel {
	switch settings.Type {
	case BiomeNeighborhood:
		return generateNeighborhood(settings, rng)
	case BiomeGraveyard:
		return generateGraveyard(settings, rng)
	case BiomeWoods:
		return generateWoods(settings, rng)
	}
	// Неизвестный тип - пустой биом, генерация продолжается
	return &BiomeModel{Settings: settings, Tiles: grid.New(settings.Width, settings.Height, grid.TileUndefined)}
}

// BorderPoints возвращает проходимые клетки модели, граничащие хотя бы
// с одной непроходимой или внешней клеткой. Это кандидаты на точку
// подключения биома к остальной карте.
func (m *BiomeModel) BorderPoints() []grid.Point {
	var points []grid.Point
	offsets := [4]grid.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

	for y := 0; y < m.Tiles.Height(); y++ {
		for x := 0; x < m.Tiles.Width(); x++ {
			p := grid.Point{X: x, Y: y}
			if !m.Tiles.IsWalkableAt(p) {
				continue
			}
			for _, d := range offsets {
				n := p.Shift(d.X, d.Y)
				// За границей модели At вернет TileUndefined - не проходимо
				if !m.Tiles.IsWalkableAt(n) {
					points = append(points, p)
					break
				}
			}
		}
	}
	return points
}

// BiomeRecord - диагностическая запись об одном размещенном биоме.
// Сама модель после мержа выбрасывается, выживают только эти данные.
type BiomeRecord struct {
	Settings        BiomeSettings `json:"settings"`
	BorderPoints    []grid.Point  `json:"borderPoints"`
	ConnectingPoint grid.Point    `json:"connectingPoint"`
}

// BiomeList - записи обо всех биомах карты.
type BiomeList []BiomeRecord
