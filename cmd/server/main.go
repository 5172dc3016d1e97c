package main

import (
	"flag"
	"log"
	"net/http"

	"zombie-outbreak/server/config"
	"zombie-outbreak/server/handlers"
	"zombie-outbreak/server/persistence"
	"zombie-outbreak/server/services"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := persistence.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	log.Println("Persistence initialized successfully")

	runService := services.NewRunService(db)
	clientManager := handlers.NewClientManager()

	http.HandleFunc("/ws", handlers.NewWebSocketHandler(runService, clientManager))

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}
