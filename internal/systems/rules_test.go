package systems

import (
	"testing"

	"trickntreat-server/internal/domain"
	"trickntreat-server/pkg/grid"
)

// fakeEnv - заглушка окружения триггеров для тестов.
type fakeEnv struct {
	spawned   []string
	relocated *grid.Point
}

func (f *fakeEnv) SpawnItem(templateID string) *domain.Item {
	f.spawned = append(f.spawned, templateID)
	if templateID == "unknown" {
		return nil
	}
	return &domain.Item{ID: "i1", TemplateID: templateID, Name: templateID}
}

func (f *fakeEnv) RelocateCharacter(ch *domain.Character, to grid.Point) {
	f.relocated = &to
	ch.Pos = to
}

func newTestCharacter() *domain.Character {
	return domain.NewCharacter("c1", "Тестер", "s1")
}

func TestEvalConditionComparators(t *testing.T) {
	ch := newTestCharacter()
	ch.Stats.Candy.Current = 5

	cases := []struct {
		name string
		cond domain.Condition
		want bool
	}{
		{"equals true", domain.Condition{Comparator: domain.ComparatorEquals, Stat: domain.StatCandy, Value: 5}, true},
		{"equals false", domain.Condition{Comparator: domain.ComparatorEquals, Stat: domain.StatCandy, Value: 4}, false},
		{"less than", domain.Condition{Comparator: domain.ComparatorLessThan, Stat: domain.StatCandy, Value: 6}, true},
		{"greater than", domain.Condition{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatCandy, Value: 5}, false},
		{"unknown stat", domain.Condition{Comparator: domain.ComparatorEquals, Stat: "MANA", Value: 0}, false},
	}

	for _, tc := range cases {
		if got := EvalCondition(tc.cond, ch); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestEvalConditionItemAndLocation(t *testing.T) {
	ch := newTestCharacter()
	ch.Pos = grid.Point{X: 3, Y: 4}

	hasItem := domain.Condition{Comparator: domain.ComparatorHasItem, ItemID: "lucky_coin"}
	if EvalCondition(hasItem, ch) {
		t.Error("Expected HAS_ITEM to fail on empty inventory")
	}

	ch.AddItem(&domain.Item{ID: "i1", TemplateID: "lucky_coin"})
	if !EvalCondition(hasItem, ch) {
		t.Error("Expected HAS_ITEM to pass")
	}

	loc := grid.Point{X: 3, Y: 4}
	atLoc := domain.Condition{Comparator: domain.ComparatorAtLocation, Location: &loc}
	if !EvalCondition(atLoc, ch) {
		t.Error("Expected AT_LOCATION to pass")
	}

	// Условие без координаты не может быть выполнено
	if EvalCondition(domain.Condition{Comparator: domain.ComparatorAtLocation}, ch) {
		t.Error("Expected AT_LOCATION without location to fail")
	}
}

func TestUnknownComparatorFailsClosed(t *testing.T) {
	ch := newTestCharacter()
	cond := domain.Condition{Comparator: "REGEX_MATCH"}
	if EvalCondition(cond, ch) {
		t.Error("Unknown comparator must fail closed")
	}
}

func TestMeetsAllConditionsVacuous(t *testing.T) {
	ch := newTestCharacter()
	if !MeetsAllConditions(ch, nil) {
		t.Error("Empty condition list must be vacuously true")
	}
	if !MeetsAllConditions(ch, []domain.Condition{}) {
		t.Error("Empty condition list must be vacuously true")
	}
}

func TestResolveTriggerListOrder(t *testing.T) {
	ch := newTestCharacter()

	// Второй триггер гейтится результатом первого: порядок имеет значение
	triggers := []domain.Trigger{
		{Effect: domain.TriggerAddCandy, Value: 3},
		{
			Effect: domain.TriggerAddLuck, Value: 1,
			Conditions: []domain.Condition{
				{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatCandy, Value: 2},
			},
		},
		{
			Effect: domain.TriggerAddGreed, Value: 1,
			Conditions: []domain.Condition{
				{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatCandy, Value: 10},
			},
		},
	}

	ResolveTriggerList(triggers, ch, &fakeEnv{})

	if ch.Stats.Candy.Current != 3 {
		t.Errorf("Expected candy 3, got %d", ch.Stats.Candy.Current)
	}
	if ch.Stats.Luck.Current != 1 {
		t.Error("Expected gated trigger to see earlier mutation")
	}
	if ch.Stats.Greed.Current != 0 {
		t.Error("Expected unmet trigger to be skipped")
	}
}

func TestTriggerStatsCanGoNegative(t *testing.T) {
	ch := newTestCharacter()

	ResolveTriggerList([]domain.Trigger{
		{Effect: domain.TriggerSubtractCandy, Value: 2},
	}, ch, nil)

	if ch.Stats.Candy.Current != -2 {
		t.Errorf("Expected candy -2 (no clamping), got %d", ch.Stats.Candy.Current)
	}
}

func TestTriggerGiveItem(t *testing.T) {
	ch := newTestCharacter()
	env := &fakeEnv{}

	ResolveTriggerList([]domain.Trigger{
		{Effect: domain.TriggerGiveItem, ItemID: "flashlight"},
		{Effect: domain.TriggerGiveItem, ItemID: "unknown"},
	}, ch, env)

	if len(ch.Inventory) != 1 {
		t.Fatalf("Expected 1 item in inventory, got %d", len(ch.Inventory))
	}
	if ch.Inventory[0].TemplateID != "flashlight" {
		t.Errorf("Expected flashlight, got %s", ch.Inventory[0].TemplateID)
	}
}

func TestTriggerChangePosition(t *testing.T) {
	ch := newTestCharacter()
	env := &fakeEnv{}
	target := grid.Point{X: 7, Y: 7}

	ResolveTriggerList([]domain.Trigger{
		{Effect: domain.TriggerChangePosition, TargetPos: &target},
	}, ch, env)

	if env.relocated == nil || !env.relocated.Equals(target) {
		t.Error("Expected relocation through the environment")
	}
	if !ch.Pos.Equals(target) {
		t.Errorf("Expected position %v, got %v", target, ch.Pos)
	}
}

func TestCanTriggerEncounter(t *testing.T) {
	ch := newTestCharacter()
	enc := &domain.Encounter{
		EncounterID: "e1",
		Conditions: []domain.Condition{
			{Comparator: domain.ComparatorGreaterThan, Stat: domain.StatSanity, Value: 3},
		},
	}

	if !CanTriggerEncounter(enc, ch) {
		t.Error("Expected encounter to be triggerable at base sanity")
	}

	ch.Stats.Sanity.Current = 1
	if CanTriggerEncounter(enc, ch) {
		t.Error("Expected encounter to stay dormant at low sanity")
	}
}
