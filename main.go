package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/health"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

const version = "1.0.0"

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Repositories ---
	// One repository per file, shared by every service that needs it.
	fs := afero.NewOsFs()
	productRepo, err := repositories.NewFileProductRepository(fs, cfg.ProductsPath())
	if err != nil {
		log.Fatalf("Failed to initialize product repository: %v", err)
	}
	cartRepo, err := repositories.NewFileCartRepository(fs, cfg.CartsPath())
	if err != nil {
		log.Fatalf("Failed to initialize cart repository: %v", err)
	}
	log.Printf("Using %s and %s", productRepo.Path(), cartRepo.Path())

	// --- Initialize RabbitMQ Client (optional) ---
	var events *services.Events
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = services.NewEvents(mqClient, cfg.EventsExchange)
	} else {
		log.Println("RABBITMQ_URL not set, domain events are disabled")
	}

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, events)
	cartService := services.NewCartService(cartRepo, productRepo, events)

	healthChecker, err := health.NewHealthHandler(version, productRepo, cartRepo)
	if err != nil {
		log.Fatalf("Failed to initialize health checks: %v", err)
	}

	// --- Initialize Fiber App ---
	app := handlers.NewApp(handlers.AppConfig{
		Products: productService,
		Carts:    cartService,
		Health:   healthChecker.Handler(),
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	// Give in-flight requests time to finish their writes.
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
