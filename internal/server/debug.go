package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"trickntreat-server/internal/engine"
	"trickntreat-server/pkg/grid"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/map", h.handleMapDump)
	mux.HandleFunc("/debug/characters", h.handleDumpCharacters)
	mux.HandleFunc("/debug/encounters", h.handleDumpEncounters)
	mux.HandleFunc("/debug/biomes", h.handleDumpBiomes)
}

// Символы тайлов для ASCII-дампа карты
var tileGlyphs = map[grid.Tile]byte{
	grid.TileUndefined: ' ',
	grid.TileEmpty:     '.',
	grid.TilePath:      ',',
	grid.TileSidewalk:  '_',
	grid.TileRoad:      '=',
	grid.TileGrass:     '"',
	grid.TileDirt:      ':',
	grid.TilePorch:     'P',
	grid.TileHouse:     'H',
	grid.TileWall:      '#',
	grid.TileTree:      'T',
	grid.TileFence:     '+',
	grid.TileDecor:     '*',
}

// /debug/map - карта в виде текста. Читается прямо из мира: для
// read-only дебага гонка не страшна.
func (h *DebugHandler) handleMapDump(w http.ResponseWriter, r *http.Request) {
	tiles := h.Service.Session.World.Tiles

	var sb strings.Builder
	for y := 0; y < tiles.Height(); y++ {
		for x := 0; x < tiles.Width(); x++ {
			g, ok := tileGlyphs[tiles.At(grid.Point{X: x, Y: y})]
			if !ok {
				g = '?'
			}
			sb.WriteByte(g)
		}
		sb.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(sb.String()))
}

// /debug/characters - дамп всех персонажей, включая скрытые статы
func (h *DebugHandler) handleDumpCharacters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Session.Characters())
}

// /debug/encounters - дамп реестра энкаунтеров
func (h *DebugHandler) handleDumpEncounters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Session.World.EncounterRegistry)
}

// /debug/biomes - диагностика генерации (границы, точки подключения)
func (h *DebugHandler) handleDumpBiomes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Session.Biomes)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустые данные возвращаем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
