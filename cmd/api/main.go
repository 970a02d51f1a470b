package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"taskFlow/internal/app"
	"taskFlow/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yml", "путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("конфигурация: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		log.Fatalf("инициализация: %s", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("запуск: %s", err)
	}
}
