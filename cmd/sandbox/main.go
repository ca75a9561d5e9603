package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"collide2d/internal/config"
	"collide2d/internal/game"
	"collide2d/internal/logging"
	"collide2d/internal/world"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file")
	scenePath := flag.String("scene", "assets/scenes/arena.yaml", "scene file, empty for a bare arena")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *writeConfig)
		return
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	w := world.New(cfg, logger)
	if *scenePath != "" {
		if err := w.LoadScene(*scenePath); err != nil {
			logger.Fatal("Sandbox: scene load failed", zap.Error(err))
		}
	}

	g := game.New(w, logger.Named("game"))
	g.ScenePath = *scenePath
	g.Run()
}
