// Package grid содержит подложку карты: прямоугольную сетку тайлов
// и карту освещенности. Все модели более высокого уровня (TileMap,
// генератор, освещение) работают поверх этих структур.
package grid

// Tile - тип одной клетки карты.
type Tile uint8

const (
	// TileUndefined - сентинел "нет данных". Возвращается при чтении за
	// границами и никогда не перезаписывает существующие клетки при мерже.
	TileUndefined Tile = iota
	TileEmpty

	// Проходимые варианты
	TilePath
	TileSidewalk
	TileRoad
	TileGrass
	TileDirt
	TilePorch // крыльцо дома, источник света

	// Непроходимые варианты
	TileHouse
	TileWall
	TileTree
	TileFence

	// Декорации (непроходимые)
	TileDecor
)

// IsWalkable возвращает true для клеток, по которым можно ходить.
func (t Tile) IsWalkable() bool {
	switch t {
	case TilePath, TileSidewalk, TileRoad, TileGrass, TileDirt, TilePorch:
		return true
	}
	return false
}

// IsLit возвращает true для тайлов, которые сами по себе светятся.
func (t Tile) IsLit() bool {
	return t == TilePorch
}

// IsDefined возвращает true, если клетка несет данные.
func (t Tile) IsDefined() bool {
	return t != TileUndefined
}

var tileNames = map[Tile]string{
	TileUndefined: "UNDEFINED",
	TileEmpty:     "EMPTY",
	TilePath:      "PATH",
	TileSidewalk:  "SIDEWALK",
	TileRoad:      "ROAD",
	TileGrass:     "GRASS",
	TileDirt:      "DIRT",
	TilePorch:     "PORCH",
	TileHouse:     "HOUSE",
	TileWall:      "WALL",
	TileTree:      "TREE",
	TileFence:     "FENCE",
	TileDecor:     "DECOR",
}

// String реализует интерфейс Stringer (для fmt.Printf и логов)
func (t Tile) String() string {
	if name, ok := tileNames[t]; ok {
		return name
	}
	return "UNDEFINED"
}

// Point - целочисленная координата клетки. (0,0) - левый верхний угол.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает новую точку со смещением, не меняя текущую.
func (p Point) Shift(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// TaxicabDistanceTo возвращает манхэттенское расстояние до другой точки.
// Это нижняя граница пути: реальный путь в обход стен не бывает короче.
func (p Point) TaxicabDistanceTo(other Point) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Equals сравнивает две точки.
func (p Point) Equals(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Grid - прямоугольная сетка тайлов.
// Инвариант: все строки одной длины. Чтение за границами возвращает
// TileUndefined и никогда не паникует.
type Grid struct {
	width  int
	height int
	cells  [][]Tile
}

// New создает сетку width x height, заполненную fill.
func New(width, height int, fill Tile) *Grid {
	cells := make([][]Tile, height)
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = fill
		}
		cells[y] = row
	}
	return &Grid{width: width, height: height, cells: cells}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds проверяет, лежит ли точка внутри сетки.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Index возвращает линейный индекс клетки (Y * Width + X).
func (g *Grid) Index(p Point) int {
	return p.Y*g.width + p.X
}

// At возвращает тайл в точке или TileUndefined за границами.
func (g *Grid) At(p Point) Tile {
	if !g.InBounds(p) {
		return TileUndefined
	}
	return g.cells[p.Y][p.X]
}

// Set записывает тайл. Запись за границами молча игнорируется.
func (g *Grid) Set(p Point, t Tile) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.Y][p.X] = t
}

// IsWalkableAt возвращает true, если клетка существует и проходима.
func (g *Grid) IsWalkableAt(p Point) bool {
	return g.At(p).IsWalkable()
}

// Fill заполняет всю сетку одним значением.
func (g *Grid) Fill(t Tile) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[y][x] = t
		}
	}
}

// Merge накладывает other на сетку со смещением offset.
// Клетки TileUndefined в other не перезаписывают существующие данные.
func (g *Grid) Merge(other *Grid, offset Point) {
	for y := 0; y < other.height; y++ {
		for x := 0; x < other.width; x++ {
			t := other.cells[y][x]
			if !t.IsDefined() {
				continue
			}
			g.Set(Point{X: offset.X + x, Y: offset.Y + y}, t)
		}
	}
}

// WalkablePoints возвращает все проходимые клетки (для генератора и тестов).
func (g *Grid) WalkablePoints() []Point {
	var points []Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x].IsWalkable() {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}
