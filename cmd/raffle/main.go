package main

import (
	"context"
	"os"

	"raffle/internal/app"
	"raffle/internal/config"
)

func main() {
	cfg := config.LoadConfig()
	a := app.NewApp(cfg)
	os.Exit(a.Run(context.Background(), os.Args[1:]))
}
