package main

import (
	"log"

	"sqlfinance-backend/internal/config"
	"sqlfinance-backend/internal/database"
	"sqlfinance-backend/internal/router"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := router.New(cfg)

	log.Println("SQLFinance corriendo en puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
