package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"filtergram/internal/app"
	"filtergram/internal/config"
	"filtergram/internal/logger"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filtergram: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	configureRuntime(log)

	fyneApp := fyneapp.NewWithID(app.AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      app.AppID,
		Name:    "FilterGram",
		Version: app.AppVersion,
	})

	application, err := app.New(fyneApp, cfg, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"stage": "initialization"})
		os.Exit(1)
	}

	application.Run()
	log.Info("Main", "application terminated", nil)
}

func newLogger(cfg *config.Config) logger.Logger {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.JSONLogs {
		return logger.NewZerolog(os.Stderr, level)
	}
	return logger.NewConsoleLogger(level)
}

// configureRuntime tunes the GC for large image allocations.
func configureRuntime(log logger.Logger) {
	gogc := os.Getenv("GOGC")
	if gogc == "" {
		debug.SetGCPercent(200)
		gogc = "200"
	}

	log.Debug("Main", "runtime configured", map[string]interface{}{
		"gomaxprocs": runtime.GOMAXPROCS(0),
		"gogc":       gogc,
	})
}
