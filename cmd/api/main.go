package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SmileyChris/worshipwise-sub003/internal/api/handlers"
	"github.com/SmileyChris/worshipwise-sub003/internal/config"
	database "github.com/SmileyChris/worshipwise-sub003/internal/db"

	// Use an alias to prevent naming collisions with the 'server' variable
	apiserver "github.com/SmileyChris/worshipwise-sub003/internal/api/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting WorshipWise Analytics API...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)

	// 3. Run Database Migrations
	db.AutoMigrate()
	// Optional: Seed a demo library so the endpoints have data to chew on
	if cfg.Server.SeedDemoData {
		database.SeedDemoLibrary(db.DB, cfg.Server.DefaultChurchID)
	}

	// 4. Setup Metrics
	handlers.RegisterMetrics()
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 5. Start Server
	// Call New() from the aliased package
	srv := apiserver.New(cfg, db)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)

	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
