package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
	mrand "math/rand"
)

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// GenerateDeterministicID создает ID из локального генератора сессии.
// Нужен, чтобы при одном и том же сиде сущности получали одни и те же ID.
func GenerateDeterministicID(rng *mrand.Rand, prefix string) string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return prefix + hex.EncodeToString(b)
}

// StringToSeed превращает строку (например, ID сессии) в детерминированный сид.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
