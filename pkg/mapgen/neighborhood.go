package mapgen

import (
	"math/rand"

	"trickntreat-server/pkg/grid"
)

// Размеры одного участка застройки: дом 3x3, перед ним крыльцо,
// тротуар и проезжая часть.
const (
	lotWidth    = 5
	houseSize   = 3
	lotRowDepth = 7 // дом (3) + двор (1) + тротуар (1) + дорога (2)
)

// generateNeighborhood выкладывает жилой квартал: ряды домов вдоль
// дороги с тротуарами. Паттерн фиксированный, масштабируется числом
// домов; rng решает только мелкую вариативность двора.
func generateNeighborhood(settings BiomeSettings, rng *rand.Rand) *BiomeModel {
	housesPerRow := settings.Width / lotWidth
	if housesPerRow < 1 {
		housesPerRow = 1
	}

	numHouses := settings.NumHouses
	if numHouses <= 0 {
		numHouses = housesPerRow
	}

	rows := (numHouses + housesPerRow - 1) / housesPerRow
	height := rows * lotRowDepth
	if height > settings.Height {
		height = settings.Height
	}

	tiles := grid.New(settings.Width, settings.Height, grid.TileUndefined)

	placed := 0
	for row := 0; row < rows && placed < numHouses; row++ {
		rowTop := row * lotRowDepth
		if rowTop+lotRowDepth > settings.Height {
			break
		}

		for i := 0; i < housesPerRow && placed < numHouses; i++ {
			lotLeft := i * lotWidth
			stampLot(tiles, lotLeft, rowTop, rng)
			placed++
		}

		// Тротуар и дорога тянутся на всю ширину ряда
		sidewalkY := rowTop + houseSize + 1
		for x := 0; x < settings.Width; x++ {
			tiles.Set(grid.Point{X: x, Y: sidewalkY}, grid.TileSidewalk)
			tiles.Set(grid.Point{X: x, Y: sidewalkY + 1}, grid.TileRoad)
			tiles.Set(grid.Point{X: x, Y: sidewalkY + 2}, grid.TileRoad)
		}
	}

	return &BiomeModel{Settings: settings, Tiles: tiles}
}

// stampLot ставит один дом с крыльцом и двором.
func stampLot(tiles *grid.Grid, left, top int, rng *rand.Rand) {
	// Дом 3x3 (стены)
	for y := 0; y < houseSize; y++ {
		for x := 0; x < houseSize; x++ {
			tiles.Set(grid.Point{X: left + 1 + x, Y: top + y}, grid.TileHouse)
		}
	}

	// Двор: полоса травы вокруг дома в пределах участка
	yardY := top + houseSize
	for x := 0; x < lotWidth; x++ {
		tiles.Set(grid.Point{X: left + x, Y: yardY}, grid.TileGrass)
	}
	tiles.Set(grid.Point{X: left, Y: top + houseSize - 1}, grid.TileGrass)
	tiles.Set(grid.Point{X: left + lotWidth - 1, Y: top + houseSize - 1}, grid.TileGrass)

	// Крыльцо перед дверью - проходимое и светится
	porchX := left + 1 + rng.Intn(houseSize)
	tiles.Set(grid.Point{X: porchX, Y: yardY}, grid.TilePorch)
}
