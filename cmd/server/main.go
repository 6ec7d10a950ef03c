package main

import (
	"log"
	"net/http"

	"soko_market/internal/config"
	"soko_market/internal/logger"
	"soko_market/internal/middleware"
	"soko_market/internal/routes"
)

func main() {
	cfg := config.Load()

	// Structured logging to a rotating file
	logger.Setup(cfg.LogFile)

	// Connect once at process start; the handle is injected everywhere.
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	r := routes.SetupRouter(cfg, db)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}
