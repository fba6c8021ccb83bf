package engine

import (
	"trickntreat-server/internal/domain"
	"trickntreat-server/internal/systems"
	"trickntreat-server/pkg/api"
	"trickntreat-server/pkg/grid"
)

// BuildSnapshotFor создает персональный слепок мира для observer.
// Туман войны: клиент получает только освещенные клетки и персонажей
// на них. Неосвещенная часть карты в ответ не попадает вовсе.
func (s *GameSession) BuildSnapshotFor(observer *domain.Character) *api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := s.lockedBaseResponse()
	resp.MyCharacterID = observer.CharacterID

	// 1. Карта: только клетки с ненулевой освещенностью
	for y := 0; y < s.World.Tiles.Height(); y++ {
		for x := 0; x < s.World.Tiles.Width(); x++ {
			p := grid.Point{X: x, Y: y}
			level := s.World.Light.At(p)
			if level == grid.LightLevelMin {
				continue
			}

			tile := s.World.Tiles.At(p)
			resp.Map = append(resp.Map, api.TileView{
				X: x, Y: y,
				Tile:         tile.String(),
				LightLevel:   level,
				IsWalkable:   tile.IsWalkable(),
				HasEncounter: s.World.EncounterAt(p) != nil,
			})
		}
	}

	// 2. Персонажи: себя видим всегда, остальных - на освещенных клетках
	for _, ch := range s.World.Characters {
		isMe := ch == observer
		if !isMe && s.World.Light.At(ch.Pos) == grid.LightLevelMin {
			continue
		}
		resp.Characters = append(resp.Characters, toCharacterView(ch, isMe))
	}

	// 3. Висящий выбор уходит только тому, кто должен его сделать
	if s.activeEncounter != nil && s.activeCharacter == observer {
		resp.Type = "ENCOUNTER"
		resp.Encounter = toEncounterView(s.activeEncounter, observer)
	}

	return resp
}

// BuildScreenSnapshot создает слепок для общего экрана (зрители видят
// всю карту и всех персонажей, но без приватных деталей).
func (s *GameSession) BuildScreenSnapshot() *api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := s.lockedBaseResponse()

	for y := 0; y < s.World.Tiles.Height(); y++ {
		for x := 0; x < s.World.Tiles.Width(); x++ {
			p := grid.Point{X: x, Y: y}
			tile := s.World.Tiles.At(p)
			if !tile.IsDefined() {
				continue
			}
			resp.Map = append(resp.Map, api.TileView{
				X: x, Y: y,
				Tile:         tile.String(),
				LightLevel:   s.World.Light.At(p),
				IsWalkable:   tile.IsWalkable(),
				HasEncounter: s.World.EncounterAt(p) != nil,
			})
		}
	}

	for _, ch := range s.World.Characters {
		resp.Characters = append(resp.Characters, toCharacterView(ch, false))
	}

	return resp
}

// lockedBaseResponse - общая шапка снапшота. Вызывается под mu.
func (s *GameSession) lockedBaseResponse() *api.ServerResponse {
	resp := &api.ServerResponse{
		Type:      "UPDATE",
		Round:     s.Round,
		GameState: string(s.State),
		Grid: &api.GridMeta{
			Width:  s.World.Tiles.Width(),
			Height: s.World.Tiles.Height(),
		},
	}
	if s.activeCharacter != nil {
		resp.ActiveCharacterID = s.activeCharacter.CharacterID
	}
	return resp
}

// toCharacterView конвертирует персонажа в DTO. Статы и инвентарь
// видит только владелец.
func toCharacterView(ch *domain.Character, isMe bool) api.CharacterView {
	view := api.CharacterView{
		ID:       ch.CharacterID,
		Name:     ch.Name,
		IsActive: ch.IsActive,
	}
	view.Pos.X = ch.Pos.X
	view.Pos.Y = ch.Pos.Y

	if !isMe {
		return view
	}

	st := ch.Stats
	view.Stats = &api.StatsView{
		Health: st.Health.Current, HealthBase: st.Health.Base,
		Movement: st.Movement.Current, MovementBase: st.Movement.Base,
		Sanity: st.Sanity.Current, SanityBase: st.Sanity.Base,
		Vision: st.Vision.Current, VisionBase: st.Vision.Base,
		Candy:  st.Candy.Current,
		Luck:   st.Luck.Current,
		Greed:  st.Greed.Current,
	}

	for _, item := range ch.Inventory {
		view.Inventory = append(view.Inventory, api.ItemView{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
		})
	}

	return view
}

// toEncounterView конвертирует активный энкаунтер: каждому варианту
// заранее проставляется доступность для этого персонажа.
func toEncounterView(e *domain.Encounter, ch *domain.Character) *api.EncounterView {
	view := &api.EncounterView{
		ID:    e.EncounterID,
		Title: e.Title,
		Text:  e.Text,
	}

	for i := range e.Actions {
		act := &e.Actions[i]
		view.Actions = append(view.Actions, api.EncounterActionView{
			ActionID:           act.ActionID,
			Label:              act.Label,
			DoesMeetConditions: systems.MeetsAllConditions(ch, act.Conditions),
		})
	}

	return view
}
