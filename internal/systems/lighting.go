package systems

import (
	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/logger"
	"trickntreat-server/pkg/pathfind"
)

// RecomputeLighting пересчитывает карту освещенности мира с нуля.
// Все источники наслаиваются монотонно: клетка получает максимум из
// вкладов, порядок прохода не влияет на итог.
func RecomputeLighting(w *domain.GameWorld) {
	w.Light.Reset()

	sources := w.LightSources()
	for _, src := range sources {
		Illuminate(w, src)
	}

	for _, c := range w.Characters {
		Illuminate(w, domain.LightSource{
			Pos:    c.Pos,
			Radius: c.Stats.Vision.Current,
		})
	}

	logger.WithComponent("lighting").
		WithField("fixed_sources", len(sources)).
		WithField("characters", len(w.Characters)).
		Debug("Lighting pass complete")
}

// Illuminate добавляет вклад одного источника: каждой клетке в радиусе
// пишется уровень max(0, radius - pathDistance). Затухание линейное и
// считается по путевому расстоянию - свет не пробивает стены.
// Запись только повышает яркость: пересекающиеся источники дают максимум
// из вкладов независимо от порядка применения.
func Illuminate(w *domain.GameWorld, src domain.LightSource) {
	if src.Radius <= 0 {
		return
	}

	cells := pathfind.CellsWithinDistance(w.Tiles, src.Pos, src.Radius)
	for _, cell := range cells {
		dist := pathfind.PathDistance(w.Tiles, src.Pos, cell)
		if dist == pathfind.Unreachable {
			continue
		}
		level := src.Radius - dist
		if level < 0 {
			level = 0
		}
		w.Light.Brighten(cell, level)
	}
}
