package engine

import (
	"time"

	"trickntreat-server/pkg/mapgen"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят карта, расстановка
	// энкаунтеров и все игровые броски.
	Seed int64

	// QueueDelay - пауза между юнитами очереди действий. Задает темп
	// анимации на клиентах; в тестах ставится в ноль.
	QueueDelay time.Duration

	Map mapgen.Config
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:       time.Now().UnixNano(),
		QueueDelay: 150 * time.Millisecond,
		Map:        mapgen.DefaultConfig(),
	}
}
