package main

import (
	"log"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
