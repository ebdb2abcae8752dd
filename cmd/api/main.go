package main

import (
	"log"

	"github.com/joho/godotenv"

	"shortr/internal/app"
	"shortr/internal/config"
	"shortr/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to open db:", err)
	}

	a := app.New(cfg, gdb)
	log.Fatal(a.Run(cfg.Addr))
}
