package server

import (
	"time"

	"github.com/gorilla/websocket"

	"trickntreat-server/internal/engine"
	"trickntreat-server/pkg/api"
	"trickntreat-server/pkg/logger"
	"trickntreat-server/pkg/utils"
)

// Screen - websocket-зритель: общий экран комнаты (телевизор).
// Команд не шлет, получает полную карту без тумана войны.
type Screen struct {
	Game *engine.GameService
	Conn *websocket.Conn
	ID   string
}

func NewScreen(game *engine.GameService, conn *websocket.Conn) *Screen {
	return &Screen{
		Game: game,
		Conn: conn,
		ID:   "screen_" + utils.GenerateID(),
	}
}

// Run подписывает экран на рассылку и гонит снапшоты в сокет.
func (s *Screen) Run() {
	updates := s.Game.ScreenHub.Register(s.ID)
	defer func() {
		s.Game.ScreenHub.Unregister(s.ID)
		if err := s.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close screen connection")
		}
	}()

	logger.Log.WithField("screen_id", s.ID).Info("Screen connected")

	// Первый кадр сразу, не дожидаясь игрового события
	s.send(*s.Game.Session.BuildScreenSnapshot())

	// Экран ничего не читает, но закрытие сокета надо заметить
	go func() {
		for {
			if _, _, err := s.Conn.ReadMessage(); err != nil {
				s.Game.ScreenHub.Unregister(s.ID)
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-updates:
			if !ok {
				return
			}
			if !s.send(msg) {
				return
			}
		case <-ticker.C:
			if err := s.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Debug("failed to set screen ping deadline")
			}
			if err := s.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Screen) send(msg api.ServerResponse) bool {
	if err := s.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		logger.Log.WithError(err).Debug("failed to set screen write deadline")
	}
	if err := s.Conn.WriteJSON(msg); err != nil {
		logger.Log.WithError(err).Debug("screen write failed")
		return false
	}
	return true
}
