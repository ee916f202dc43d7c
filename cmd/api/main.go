package main

import (
	"context"
	"log"

	"reglookup/adapters/api"
	"reglookup/internal/config"
	"reglookup/internal/container"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := run(); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(context.Background(), appConfig)
	if err != nil {
		return err
	}
	defer appContainer.Shutdown(context.Background())

	server := api.NewServer(appContainer.LookupService, appContainer.Source)
	return server.Start(":" + appConfig.Server.Port)
}
