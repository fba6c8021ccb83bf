package grid

// Уровни освещенности клетки.
const (
	LightLevelMin = 0
	LightLevelMax = 10
)

// LightMap - сетка целочисленных уровней света 0..10.
// Инвариант: значение клетки - максимум вкладов всех источников за один
// проход освещения. Чтение за границами возвращает 0.
type LightMap struct {
	width  int
	height int
	levels [][]int
}

// NewLightMap создает карту освещенности width x height, вся в темноте.
func NewLightMap(width, height int) *LightMap {
	levels := make([][]int, height)
	for y := 0; y < height; y++ {
		levels[y] = make([]int, width)
	}
	return &LightMap{width: width, height: height, levels: levels}
}

func (m *LightMap) Width() int  { return m.width }
func (m *LightMap) Height() int { return m.height }

func (m *LightMap) inBounds(p Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// At возвращает уровень света в точке, 0 за границами.
func (m *LightMap) At(p Point) int {
	if !m.inBounds(p) {
		return LightLevelMin
	}
	return m.levels[p.Y][p.X]
}

// Reset гасит всю карту.
func (m *LightMap) Reset() {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.levels[y][x] = LightLevelMin
		}
	}
}

func clampLevel(level int) int {
	if level < LightLevelMin {
		return LightLevelMin
	}
	if level > LightLevelMax {
		return LightLevelMax
	}
	return level
}

// Brighten записывает уровень, только если он ярче текущего.
// Источники света никогда не затемняют клетку, освещенную более ярким
// соседом в том же проходе.
func (m *LightMap) Brighten(p Point, level int) {
	if !m.inBounds(p) {
		return
	}
	level = clampLevel(level)
	if level > m.levels[p.Y][p.X] {
		m.levels[p.Y][p.X] = level
	}
}

