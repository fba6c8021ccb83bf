package systems

import (
	"testing"

	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
)

func TestCalculateStepOpenCell(t *testing.T) {
	w := newOpenWorld(5, 5)
	ch := newTestCharacter()
	ch.Pos = grid.Point{X: 2, Y: 2}

	res := CalculateStep(w, ch, 1, 0)

	if !res.HasMoved || res.IsBlocked {
		t.Fatal("Expected a legal step onto an open cell")
	}
	if !res.NewPos.Equals(grid.Point{X: 3, Y: 2}) {
		t.Errorf("Expected new pos (3,2), got %v", res.NewPos)
	}
	if res.Encounter != nil {
		t.Error("Expected no encounter on an empty cell")
	}
}

func TestCalculateStepBlockedByWall(t *testing.T) {
	w := newOpenWorld(5, 5)
	w.Tiles.Set(grid.Point{X: 3, Y: 2}, grid.TileWall)

	ch := newTestCharacter()
	ch.Pos = grid.Point{X: 2, Y: 2}

	res := CalculateStep(w, ch, 1, 0)
	if res.HasMoved || !res.IsBlocked {
		t.Error("Expected step into wall to be blocked")
	}
}

func TestCalculateStepOutOfBounds(t *testing.T) {
	w := newOpenWorld(3, 3)
	ch := newTestCharacter()
	ch.Pos = grid.Point{X: 0, Y: 0}

	res := CalculateStep(w, ch, -1, 0)
	if res.HasMoved || !res.IsBlocked {
		t.Error("Expected step off the map to be blocked")
	}
}

func TestCalculateStepNoMovementPoints(t *testing.T) {
	w := newOpenWorld(5, 5)
	ch := newTestCharacter()
	ch.Pos = grid.Point{X: 2, Y: 2}
	ch.Stats.Movement.Current = 0

	res := CalculateStep(w, ch, 0, 1)
	if res.HasMoved || !res.IsBlocked {
		t.Error("Expected exhausted character to be blocked")
	}
}

func TestCalculateStepDetectsEncounter(t *testing.T) {
	w := newOpenWorld(5, 5)
	enc := &domain.Encounter{EncounterID: "e1", Pos: grid.Point{X: 2, Y: 3}}
	w.AddEncounter(enc)

	ch := newTestCharacter()
	ch.Pos = grid.Point{X: 2, Y: 2}

	res := CalculateStep(w, ch, 0, 1)
	if !res.HasMoved {
		t.Fatal("Expected the step to succeed")
	}
	if res.Encounter != enc {
		t.Error("Expected the encounter on the target cell to be reported")
	}
}
