package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"trickntreat-server/internal/agent"
	"trickntreat-server/internal/engine"
	"trickntreat-server/internal/server"
	"trickntreat-server/internal/version"
	"trickntreat-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var bots int
	var replayPath string
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.IntVar(&bots, "bots", 0, "Number of computer players to spawn")
	flag.StringVar(&replayPath, "replay", "", "Path to .tntj journal file to inspect")
	flag.Parse()

	logger.Log.Info("Starting Trick-n-Treat server...")
	logger.Log.Info(version.String())

	// РЕЖИМ ПРОСМОТРА ЖУРНАЛА
	if replayPath != "" {
		cfg := engine.NewConfig()
		gameService := engine.NewService(cfg)

		session, err := gameService.LoadReplay(replayPath)
		if err != nil {
			logger.Log.Fatal("Failed to load journal:", err)
		}

		logger.Log.Infof("💿 Journal %s: seed=%d actions=%d",
			session.SessionID, session.Seed, len(session.Actions))
		for _, act := range session.Actions {
			logger.Log.Infof("  round %d: %s %s %s",
				act.Round, act.CharacterID, act.Action.String(), string(act.Payload))
		}
		return
	}

	// Формируем конфиг
	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random seed: %d", cfg.Seed)
	}

	port := os.Getenv("TNT_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg)
	gameService.Start()

	// Боты-статисты, если попросили
	for i := 0; i < bots; i++ {
		bot := agent.NewBot(botName(i), gameService)
		go bot.Run()
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	if err := gameService.SaveReplay(); err != nil {
		logger.Log.WithError(err).Warn("Failed to save journal")
	}

	logger.Log.Info("Done.")
}

var botNames = []string{"casper", "wednesday", "pugsley", "morticia", "gomez", "lurch"}

func botName(i int) string {
	if i < len(botNames) {
		return botNames[i]
	}
	return botNames[i%len(botNames)] + "_2"
}
