package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/fuelpos/fuelpos/internal/api"
	"github.com/fuelpos/fuelpos/internal/config"
	"github.com/fuelpos/fuelpos/internal/database"
	"github.com/fuelpos/fuelpos/internal/migrations"
	"github.com/fuelpos/fuelpos/internal/pos"
	"github.com/fuelpos/fuelpos/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	st := store.New(db)
	handler := api.New(st, pos.New(st), cfg.SessionTTLDays)

	log.Printf("fuelpos server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
