package mapgen

import (
	"math/rand"

	"trickntreat-server/pkg/grid"
)

// generateGraveyard - кладбище: ограда по периметру, внутри случайный
// "сплаттер" проходимой земли с редкими надгробиями.
func generateGraveyard(settings BiomeSettings, rng *rand.Rand) *BiomeModel {
	tiles := grid.New(settings.Width, settings.Height, grid.TileUndefined)

	density := settings.Density
	if density <= 0 {
		density = 0.6
	}

	for y := 0; y < settings.Height; y++ {
		for x := 0; x < settings.Width; x++ {
			p := grid.Point{X: x, Y: y}

			onBorder := x == 0 || y == 0 || x == settings.Width-1 || y == settings.Height-1
			if onBorder {
				tiles.Set(p, grid.TileFence)
				continue
			}

			if rng.Float64() < density {
				tiles.Set(p, grid.TileDirt)
			} else {
				tiles.Set(p, grid.TileWall) // надгробия и склепы
			}
		}
	}

	// Калитка: один гарантированный проход в ограде
	gate := grid.Point{X: 1 + rng.Intn(settings.Width-2), Y: settings.Height - 1}
	tiles.Set(gate, grid.TileDirt)
	tiles.Set(gate.Shift(0, -1), grid.TileDirt)

	return &BiomeModel{Settings: settings, Tiles: tiles}
}

// generateWoods - лес: случайные деревья среди травы, без ограды.
func generateWoods(settings BiomeSettings, rng *rand.Rand) *BiomeModel {
	tiles := grid.New(settings.Width, settings.Height, grid.TileUndefined)

	density := settings.Density
	if density <= 0 {
		density = 0.7
	}

	for y := 0; y < settings.Height; y++ {
		for x := 0; x < settings.Width; x++ {
			p := grid.Point{X: x, Y: y}
			if rng.Float64() < density {
				tiles.Set(p, grid.TileGrass)
			} else {
				tiles.Set(p, grid.TileTree)
			}
		}
	}

	return &BiomeModel{Settings: settings, Tiles: tiles}
}
