package domain

import (
	"testing"

	"trickntreat-server/pkg/grid"
)

func TestEncounterRegistryIndex(t *testing.T) {
	w := NewGameWorld(grid.New(5, 5, grid.TileSidewalk))
	e := &Encounter{EncounterID: "e1", Pos: grid.Point{X: 2, Y: 2}}

	w.AddEncounter(e)
	if w.EncounterAt(grid.Point{X: 2, Y: 2}) != e {
		t.Fatal("Expected the encounter on its cell")
	}

	w.RemoveEncounter("e1")
	if w.EncounterAt(grid.Point{X: 2, Y: 2}) != nil {
		t.Error("Expected the cell to be free after removal")
	}
	if w.GetEncounter("e1") != nil {
		t.Error("Expected the registry entry to be gone")
	}
}

func TestHasEncounterNear(t *testing.T) {
	w := NewGameWorld(grid.New(5, 5, grid.TileSidewalk))
	w.AddEncounter(&Encounter{EncounterID: "e1", Pos: grid.Point{X: 2, Y: 2}})

	if !w.HasEncounterNear(grid.Point{X: 0, Y: 2}, 2) {
		t.Error("Expected an encounter within taxicab distance 2")
	}
	if w.HasEncounterNear(grid.Point{X: 0, Y: 0}, 2) {
		t.Error("Expected no encounter within taxicab distance 2 of the corner")
	}
}
