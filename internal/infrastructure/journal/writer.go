// Package journal пишет и читает бинарную ленту действий сессии.
// Формат: фиксированный заголовок файла, ID сессии, затем записи
// действий подряд. Вместе с сидом этого достаточно для пересимуляции.
package journal

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"trickntreat-server/internal/domain"
)

const (
	MagicHeader string = `TNTJ` // 4 байта
	Version1    uint32 = 1
)

// FileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: внутри только числа и массивы.
type FileHeader struct {
	Magic        [4]byte // 4 байта
	Version      uint32  // 4 байта
	Seed         int64   // 8 байт
	Timestamp    int64   // 8 байт
	SessionIDLen uint16  // 2 байта
	ActionCount  int32   // 4 байта
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Round      int32  // 4
	ActionType uint8  // 1
	TokenLen   uint8  // 1
	PayloadLen uint16 // 2
}

type JournalService struct {
	SaveDir string
}

func NewJournalService(dir string) *JournalService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.Mkdir(dir, 0755)
	}
	return &JournalService{SaveDir: dir}
}

func (s *JournalService) Save(session *domain.ReplaySession) error {
	filename := fmt.Sprintf("journal_%d_%s.tntj", session.Seed, session.SessionID)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeBinary(f, session)
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	sessionID := []byte(s.SessionID)
	if len(sessionID) > 65535 {
		return fmt.Errorf("session id too long: %d", len(sessionID))
	}

	header := FileHeader{
		Version:      Version1,
		Seed:         s.Seed,
		Timestamp:    s.Timestamp,
		SessionIDLen: uint16(len(sessionID)),
		ActionCount:  int32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := w.Write(sessionID); err != nil {
		return err
	}

	for _, act := range s.Actions {
		tokenBytes := []byte(act.CharacterID)
		if len(tokenBytes) > 255 {
			return fmt.Errorf("character id too long: %d", len(tokenBytes))
		}

		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Round:      int32(act.Round),
			ActionType: uint8(act.Action),
			TokenLen:   uint8(len(tokenBytes)),
			PayloadLen: uint16(payloadLen),
		}

		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		if _, err := w.Write(tokenBytes); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
