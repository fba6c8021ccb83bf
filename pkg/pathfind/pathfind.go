// Package pathfind превращает сетку тайлов в граф проходимости и ищет
// кратчайшие пути. Все расстояния здесь - "путевые" (число шагов по
// проходимым клеткам), а не евклидовы.
package pathfind

import (
	"container/heap"

	"trickntreat-server/pkg/grid"
)

// Unreachable - сентинел PathDistance для несвязанных пар клеток.
const Unreachable = -1

// Четыре направления обхода (диагоналей нет)
var neighbors = [4]grid.Point{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// pathNode - элемент открытого списка A*
type pathNode struct {
	point grid.Point
	cost  int // g: шагов от старта
	score int // f = g + эвристика
	index int // индекс в куче (нужен для heap.Fix)
}

// openList реализует heap.Interface (min-heap по score)
type openList []*pathNode

func (pq openList) Len() int            { return len(pq) }
func (pq openList) Less(i, j int) bool  { return pq[i].score < pq[j].score }
func (pq openList) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *openList) Push(x interface{}) { n := x.(*pathNode); n.index = len(*pq); *pq = append(*pq, n) }
func (pq *openList) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // избегаем утечки памяти
	*pq = old[:n-1]
	return item
}

// Traversable определяет, какие тайлы считаются проходимыми при поиске.
type Traversable func(t grid.Tile) bool

// walkableOnly - стандартный фильтр игрового движения.
func walkableOnly(t grid.Tile) bool { return t.IsWalkable() }

// Carvable - фильтр генератора карты: прокладывать соединительные тропы
// можно и по пустым клеткам, но не сквозь стены.
func Carvable(t grid.Tile) bool {
	return t.IsWalkable() || t == grid.TileEmpty || t == grid.TileUndefined
}

// ShortestPath возвращает кратчайший путь от start до end включительно,
// используя A* с манхэттенской эвристикой и единичной стоимостью шага.
// Возвращает пустой срез, если путь не существует (start/end непроходимы
// или регионы не связаны).
func ShortestPath(g *grid.Grid, start, end grid.Point) []grid.Point {
	return ShortestPathFiltered(g, start, end, walkableOnly)
}

// ShortestPathFiltered - вариант ShortestPath с настраиваемым фильтром
// проходимости. Точки за границами сетки непроходимы всегда.
func ShortestPathFiltered(g *grid.Grid, start, end grid.Point, canEnter Traversable) []grid.Point {
	enterable := func(p grid.Point) bool {
		return g.InBounds(p) && canEnter(g.At(p))
	}
	if !enterable(start) || !enterable(end) {
		return nil
	}
	if start.Equals(end) {
		return []grid.Point{start}
	}

	open := make(openList, 0)
	heap.Init(&open)

	startNode := &pathNode{point: start, cost: 0, score: start.TaxicabDistanceTo(end)}
	heap.Push(&open, startNode)

	// nodeFor: лучшая известная стоимость до клетки
	nodeFor := map[grid.Point]*pathNode{start: startNode}
	cameFrom := map[grid.Point]grid.Point{}
	closed := map[grid.Point]bool{}

	for open.Len() > 0 {
		current := heap.Pop(&open).(*pathNode)
		if current.point.Equals(end) {
			return reconstruct(cameFrom, end)
		}
		closed[current.point] = true

		for _, d := range neighbors {
			next := current.point.Shift(d.X, d.Y)
			if !enterable(next) || closed[next] {
				continue
			}

			cost := current.cost + 1
			known, seen := nodeFor[next]
			if !seen {
				node := &pathNode{
					point: next,
					cost:  cost,
					score: cost + next.TaxicabDistanceTo(end),
				}
				nodeFor[next] = node
				cameFrom[next] = current.point
				heap.Push(&open, node)
			} else if cost < known.cost {
				known.cost = cost
				known.score = cost + next.TaxicabDistanceTo(end)
				cameFrom[next] = current.point
				heap.Fix(&open, known.index)
			}
		}
	}

	return nil
}

func reconstruct(cameFrom map[grid.Point]grid.Point, end grid.Point) []grid.Point {
	path := []grid.Point{end}
	current := end
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	// Разворачиваем: путь собирался от конца к началу
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathDistance возвращает число шагов кратчайшего пути между a и b,
// или Unreachable, если пути нет.
func PathDistance(g *grid.Grid, a, b grid.Point) int {
	path := ShortestPath(g, a, b)
	if len(path) == 0 {
		return Unreachable
	}
	return len(path) - 1
}

// CellsWithinDistance возвращает все клетки, достижимые из from не более
// чем за maxSteps шагов. Сначала дешевый фильтр по манхэттенскому
// расстоянию (нижняя граница пути), затем точная проверка пути - стены
// могут сделать реальный путь длиннее.
func CellsWithinDistance(g *grid.Grid, from grid.Point, maxSteps int) []grid.Point {
	if maxSteps < 0 || !g.IsWalkableAt(from) {
		return nil
	}

	var cells []grid.Point
	for y := from.Y - maxSteps; y <= from.Y+maxSteps; y++ {
		for x := from.X - maxSteps; x <= from.X+maxSteps; x++ {
			p := grid.Point{X: x, Y: y}
			if !g.IsWalkableAt(p) {
				continue
			}
			if from.TaxicabDistanceTo(p) > maxSteps {
				continue
			}
			dist := PathDistance(g, from, p)
			if dist != Unreachable && dist <= maxSteps {
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// NearestWalkable ищет ближайшую к from проходимую клетку основной сетки
// в пределах searchRadius (по манхэттенским кольцам). Используется
// генератором, чтобы найти точку подключения нового биома.
func NearestWalkable(g *grid.Grid, from grid.Point, searchRadius int) (grid.Point, bool) {
	if g.IsWalkableAt(from) {
		return from, true
	}

	for r := 1; r <= searchRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				// Только кольцо радиуса r, внутренности уже проверены
				if from.TaxicabDistanceTo(from.Shift(dx, dy)) != r {
					continue
				}
				p := from.Shift(dx, dy)
				if g.IsWalkableAt(p) {
					return p, true
				}
			}
		}
	}
	return grid.Point{}, false
}
