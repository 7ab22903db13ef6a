package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/yourusername/termchat/internal/client"
	"github.com/yourusername/termchat/internal/config"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termchat: %v\n", err)
	}
	os.Exit(code)
}

// run keeps every defer inside a function that returns, so the log file is flushed before exit
func run() (int, error) {
	// 1. Configuration: .env, environment, then flags
	cfg, err := config.Load()
	if err != nil {
		return exitConfig, err
	}

	serverURL := flag.String("server", cfg.ServerURL, "WebSocket server URL")
	name := flag.String("name", cfg.Username, "Chat name (empty lets the server pick one)")
	mode := flag.String("mode", cfg.Mode, "Interface: tui, termloop or plain")
	flag.Parse()

	cfg.ServerURL = *serverURL
	cfg.Username = *name
	cfg.Mode = *mode

	if err := cfg.Validate(); err != nil {
		flag.Usage()
		return exitConfig, err
	}
	level, err := cfg.Level()
	if err != nil {
		return exitConfig, err
	}

	// 2. Logger: the screen belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return exitConfig, fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	log := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})).
		With("session", uuid.NewString())
	log.Info("client starting", "server", cfg.ServerURL, "mode", cfg.Mode)

	// 3. Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Interface
	switch cfg.Mode {
	case config.ModeTermloop:
		err = client.RunTermloop(ctx, cfg, log)
	case config.ModePlain:
		err = client.RunPlain(ctx, cfg, log, os.Stdin, os.Stdout)
	default:
		err = client.RunTUI(cfg, log)
	}
	if err != nil {
		log.Error("client stopped", "error", err)
		return exitRuntime, err
	}

	log.Info("client stopped")
	return exitOK, nil
}
