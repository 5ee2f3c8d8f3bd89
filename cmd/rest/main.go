package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"template-builder-be/internal/bootstrap"
	"template-builder-be/internal/config"
	"template-builder-be/internal/server"
	"template-builder-be/internal/tracer"
	"template-builder-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Println("Background: Starting Lint Consumer Service...")
		if err := container.LintConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Lint Consumer Error: %v", err)
		}
	}()

	if container.ActivityService != nil {
		if err := container.ActivityService.Start(); err != nil {
			log.Printf("[WARN] Failed to start template activity subscriber: %v", err)
		}
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
