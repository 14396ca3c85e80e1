package main

import (
	"log"
	"net/http"
	"os"
	_ "time/tzdata" // shop time zones must resolve in minimal containers

	"github.com/joho/godotenv"

	"pizzeria-manager/app"
	"pizzeria-manager/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
		}
	}

	mux := http.NewServeMux()

	// Initialize application
	if err := app.Initialize(mux); err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + app.Port()
	log.Printf("Server starting on %s", addr)
	log.Printf("Slot board endpoint: GET http://localhost:%s/admin/slots?date=YYYY-MM-DD", app.Port())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
