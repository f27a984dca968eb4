package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"pathnottaken-go/config"
	"pathnottaken-go/internal/app"
	"pathnottaken-go/internal/cli"
	"pathnottaken-go/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 命令行默认只输出警告以上，避免干扰stdout上的JSON
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	if err := logging.Setup(level, "console"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	root := cli.NewRootCmd(&cli.App{Simulator: application.Service})
	return root.ExecuteContext(ctx)
}
