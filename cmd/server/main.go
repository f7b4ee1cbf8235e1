package main

import (
	"prize_pool/internal/app"
	"prize_pool/pkg/logger"
)

func main() {
	a := app.NewApp()
	if err := a.Run(); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
