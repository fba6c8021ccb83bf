package systems

import (
	"testing"

	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
)

func newOpenWorld(w, h int) *domain.GameWorld {
	return domain.NewGameWorld(grid.New(w, h, grid.TileSidewalk))
}

func TestIlluminateDecay(t *testing.T) {
	w := newOpenWorld(9, 9)
	center := grid.Point{X: 4, Y: 4}

	Illuminate(w, domain.LightSource{Pos: center, Radius: 4})

	cases := []struct {
		p    grid.Point
		want int
	}{
		{center, 4},
		{grid.Point{X: 5, Y: 4}, 3},
		{grid.Point{X: 6, Y: 4}, 2},
		{grid.Point{X: 8, Y: 4}, 0}, // граница радиуса
		{grid.Point{X: 0, Y: 4}, 0},
	}

	for _, tc := range cases {
		if got := w.Light.At(tc.p); got != tc.want {
			t.Errorf("Cell %v: expected level %d, got %d", tc.p, tc.want, got)
		}
	}
}

func TestLightDoesNotPassWalls(t *testing.T) {
	// Стена рядом с источником: свет обходит ее, а не просвечивает
	w := newOpenWorld(7, 3)
	w.Tiles.Set(grid.Point{X: 2, Y: 0}, grid.TileWall)
	w.Tiles.Set(grid.Point{X: 2, Y: 1}, grid.TileWall)

	src := grid.Point{X: 1, Y: 0}
	Illuminate(w, domain.LightSource{Pos: src, Radius: 4})

	// По манхэттену (3,0) в двух шагах, но путь в обход стены длиннее
	behind := grid.Point{X: 3, Y: 0}
	direct := 4 - src.TaxicabDistanceTo(behind)
	if got := w.Light.At(behind); got >= direct {
		t.Errorf("Expected light behind wall dimmer than %d, got %d", direct, got)
	}

	if w.Light.At(grid.Point{X: 2, Y: 0}) != grid.LightLevelMin {
		t.Error("Wall cell itself must stay dark")
	}
}

func TestRecomputeLightingLayers(t *testing.T) {
	w := newOpenWorld(11, 3)
	w.Tiles.Set(grid.Point{X: 1, Y: 1}, grid.TilePorch)

	ch := domain.NewCharacter("c1", "Ведьмочка", "s1")
	ch.Pos = grid.Point{X: 8, Y: 1}
	w.AddCharacter(ch)

	RecomputeLighting(w)

	// Крыльцо светит как стационарный источник
	if w.Light.At(grid.Point{X: 1, Y: 1}) != domain.DefaultTileLightRadius {
		t.Errorf("Expected porch level %d, got %d",
			domain.DefaultTileLightRadius, w.Light.At(grid.Point{X: 1, Y: 1}))
	}

	// Зрение персонажа освещает его клетку
	if w.Light.At(ch.Pos) != ch.Stats.Vision.Current {
		t.Errorf("Expected character cell level %d, got %d",
			ch.Stats.Vision.Current, w.Light.At(ch.Pos))
	}

	// Повторный пересчет начинается с темноты: сдвигаем персонажа
	// и проверяем, что старая клетка погасла
	old := ch.Pos
	ch.Pos = grid.Point{X: 9, Y: 1}
	RecomputeLighting(w)

	if w.Light.At(old) >= ch.Stats.Vision.Current {
		t.Error("Expected stale light to fade after recompute")
	}
}

func TestCharacterVisionStacksOnFixedLight(t *testing.T) {
	// Зрение персонажа не должно затемнять уже освещенную зону
	w := newOpenWorld(5, 1)
	w.Tiles.Set(grid.Point{X: 0, Y: 0}, grid.TilePorch)

	ch := domain.NewCharacter("c1", "Призрак", "s1")
	ch.Pos = grid.Point{X: 2, Y: 0}
	ch.Stats.Vision.Current = 1
	w.AddCharacter(ch)

	RecomputeLighting(w)

	// Клетка (1,0): крыльцо дает 2, слабое зрение дало бы 0
	if got := w.Light.At(grid.Point{X: 1, Y: 0}); got != 2 {
		t.Errorf("Expected porch light 2 to survive, got %d", got)
	}
}

func TestOverlappingFixedSourcesTakeMax(t *testing.T) {
	// Два стационарных источника с пересечением: спорная клетка всегда
	// получает максимум из вкладов, сколько бы раз ни шел пересчет
	w := newOpenWorld(7, 1)
	w.AddEncounter(&domain.Encounter{
		EncounterID: "bright", Pos: grid.Point{X: 0, Y: 0},
		IsLit: true, LightRadius: 5,
	})
	w.AddEncounter(&domain.Encounter{
		EncounterID: "dim", Pos: grid.Point{X: 4, Y: 0},
		IsLit: true, LightRadius: 2,
	})

	// (2,0): яркий дает 5-2=3, тусклый 2-2=0
	contested := grid.Point{X: 2, Y: 0}
	for i := 0; i < 50; i++ {
		RecomputeLighting(w)
		if got := w.Light.At(contested); got != 3 {
			t.Fatalf("Pass %d: expected level 3 at %v, got %d", i, contested, got)
		}
	}
}

func TestIlluminateZeroRadius(t *testing.T) {
	w := newOpenWorld(3, 3)
	Illuminate(w, domain.LightSource{Pos: grid.Point{X: 1, Y: 1}, Radius: 0})

	if w.Light.At(grid.Point{X: 1, Y: 1}) != grid.LightLevelMin {
		t.Error("Zero-radius source must emit nothing")
	}
}
