package main

import (
	"context"
	"log"

	"github.com/radhian/order-validation-system/config"
	"github.com/radhian/order-validation-system/controllers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app := controllers.App{}
	if err := app.Initialize(context.Background(), cfg); err != nil {
		log.Fatalf("initialize error: %v", err)
	}
	defer app.Close()

	app.RunServer()
}
