package main

import (
	"context"
	"log"

	"github.com/locvowork/practiceapp/internal/bootstrap"
	"github.com/locvowork/practiceapp/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped", err)
		log.Fatal(err)
	}
}
