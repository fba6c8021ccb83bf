package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер.
// Вызывается один раз при старте процесса (main.go) и в TestMain пакетов,
// которые пишут логи.
func Init() {
	Log = logrus.New()

	// 1. Уровень логирования из окружения. По умолчанию "info",
	// для разработки удобно выставить LOG_LEVEL=debug.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для продакшена и сбора логов, текст с цветами
	// для локальной разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// WithComponent возвращает entry с проставленным полем component.
// Сокращение для самого частого паттерна в systems/engine.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
