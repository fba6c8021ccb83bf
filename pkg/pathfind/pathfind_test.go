package pathfind

import (
	"testing"

	"trickntreat-server/pkg/grid"
)

// buildGrid собирает сетку из строк: '.' проходимо, '#' стена, ' ' пусто.
func buildGrid(rows []string) *grid.Grid {
	g := grid.New(len(rows[0]), len(rows), grid.TileEmpty)
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '.':
				g.Set(grid.Point{X: x, Y: y}, grid.TileSidewalk)
			case '#':
				g.Set(grid.Point{X: x, Y: y}, grid.TileWall)
			}
		}
	}
	return g
}

func TestShortestPathStraight(t *testing.T) {
	g := buildGrid([]string{
		".....",
		".....",
	})

	path := ShortestPath(g, grid.Point{X: 0, Y: 0}, grid.Point{X: 4, Y: 0})
	if len(path) != 5 {
		t.Fatalf("Expected path of 5 cells, got %d", len(path))
	}
	if !path[0].Equals(grid.Point{X: 0, Y: 0}) || !path[4].Equals(grid.Point{X: 4, Y: 0}) {
		t.Error("Path must include both endpoints")
	}
}

func TestShortestPathDetour(t *testing.T) {
	// Стена посередине: путь обязан обойти ее снизу
	g := buildGrid([]string{
		"..#..",
		"..#..",
		".....",
	})

	start := grid.Point{X: 0, Y: 0}
	end := grid.Point{X: 4, Y: 0}

	dist := PathDistance(g, start, end)
	if dist != 8 {
		t.Errorf("Expected detour distance 8, got %d", dist)
	}

	for _, p := range ShortestPath(g, start, end) {
		if !g.IsWalkableAt(p) {
			t.Errorf("Path goes through blocked cell %v", p)
		}
	}
}

func TestPathDistanceUnreachable(t *testing.T) {
	g := buildGrid([]string{
		".#.",
		".#.",
		".#.",
	})

	dist := PathDistance(g, grid.Point{X: 0, Y: 0}, grid.Point{X: 2, Y: 0})
	if dist != Unreachable {
		t.Errorf("Expected Unreachable, got %d", dist)
	}

	// Старт на стене тоже недостижим
	dist = PathDistance(g, grid.Point{X: 1, Y: 0}, grid.Point{X: 0, Y: 0})
	if dist != Unreachable {
		t.Errorf("Expected Unreachable from wall, got %d", dist)
	}
}

func TestShortestPathSameCell(t *testing.T) {
	g := buildGrid([]string{"..."})
	path := ShortestPath(g, grid.Point{X: 1, Y: 0}, grid.Point{X: 1, Y: 0})
	if len(path) != 1 {
		t.Errorf("Expected single-cell path, got %d cells", len(path))
	}
}

func TestShortestPathFilteredCarvable(t *testing.T) {
	// Между двумя проходимыми островами только пустота: игровой путь
	// не существует, но тропу прокладывать можно
	g := buildGrid([]string{
		".   .",
	})

	start := grid.Point{X: 0, Y: 0}
	end := grid.Point{X: 4, Y: 0}

	if len(ShortestPath(g, start, end)) != 0 {
		t.Error("Expected no walkable path across empty cells")
	}

	carved := ShortestPathFiltered(g, start, end, Carvable)
	if len(carved) != 5 {
		t.Errorf("Expected carvable path of 5 cells, got %d", len(carved))
	}
}

func TestCellsWithinDistance(t *testing.T) {
	// Клетка за стеной близка по манхэттену, но далека по пути
	g := buildGrid([]string{
		"...",
		".#.",
		"...",
	})

	cells := CellsWithinDistance(g, grid.Point{X: 0, Y: 1}, 2)

	found := map[grid.Point]bool{}
	for _, c := range cells {
		found[c] = true
	}

	if !found[grid.Point{X: 0, Y: 0}] || !found[grid.Point{X: 1, Y: 0}] {
		t.Error("Expected near cells within distance 2")
	}
	// (2,1): манхэттен 2, путь в обход стены 4
	if found[grid.Point{X: 2, Y: 1}] {
		t.Error("Cell behind wall must not be within path distance 2")
	}
}

func TestNearestWalkable(t *testing.T) {
	g := buildGrid([]string{
		"#..",
		"###",
	})

	p, ok := NearestWalkable(g, grid.Point{X: 0, Y: 0}, 3)
	if !ok {
		t.Fatal("Expected to find a walkable cell")
	}
	if !p.Equals(grid.Point{X: 1, Y: 0}) {
		t.Errorf("Expected (1,0), got %v", p)
	}

	// Уже проходимая точка возвращается как есть
	p, ok = NearestWalkable(g, grid.Point{X: 2, Y: 0}, 3)
	if !ok || !p.Equals(grid.Point{X: 2, Y: 0}) {
		t.Errorf("Expected identity for walkable cell, got %v", p)
	}

	_, ok = NearestWalkable(buildGrid([]string{"###"}), grid.Point{X: 1, Y: 0}, 5)
	if ok {
		t.Error("Expected no walkable cell on an all-wall grid")
	}
}
