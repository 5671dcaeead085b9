package main

import (
	"log/slog"
	"time"

	"github.com/soocke/autodraw-go/app"
	"github.com/soocke/autodraw-go/config"
	"github.com/soocke/autodraw-go/debug"
)

const configPath = "autodraw.json"

func main() {
	cfg, err := config.Load(configPath)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Error("config load", "path", configPath, "error", err)
	}

	if cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, logger)
		debug.StartMemLogger(5*time.Second, logger)
	}

	application, err := app.NewApp("AutoDraw", 800, 800, cfg, configPath, logger)
	if err != nil {
		logger.Error("startup", "error", err)
		return
	}
	application.Start()
}
