package main

import (
	"context"
	"log"

	"github.com/guluwater/officetools-server/internal/server"
	"github.com/guluwater/officetools-server/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
