// Command activity-consumer drains the fyyur.activity queue into an
// append-only activity log.  It runs apart from the web server.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/queue"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEventsConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("activity-consumer: queue=%s log=%s", cfg.Queue, cfg.LogPath)
	err := queue.StartActivityConsumer(ctx, queue.ConsumerConfig{URL: cfg.URL, Queue: cfg.Queue, LogPath: cfg.LogPath})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("activity-consumer: %v", err)
	}
}
