// Command facture-server runs the invoice extraction HTTP API.
//
// Configuration comes from the environment (a .env file is honored):
// PORT, OCR_API_KEY, DATABASE_URL, AZURE_VISION_ENDPOINT and
// AZURE_VISION_KEY.
package main

import (
	"log"

	"facture"
	"facture/ocr"
	"facture/server"
)

func main() {
	cfg := server.LoadConfig()

	if cfg.AzureVision.Endpoint == "" || cfg.AzureVision.Key == "" {
		log.Fatal("AZURE_VISION_ENDPOINT and AZURE_VISION_KEY must be set")
	}
	recognizer := ocr.NewAzureClient(cfg.AzureVision.Endpoint, cfg.AzureVision.Key)

	var store *server.Store
	if cfg.DatabaseURL != "" {
		var err error
		store, err = server.OpenStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
	} else {
		log.Print("DATABASE_URL not set; extraction summaries will not be persisted")
	}

	srv := server.New(facture.New(), recognizer, store, cfg.APIKey)
	if err := srv.Run(cfg.Port); err != nil {
		log.Fatal(err)
	}
}
