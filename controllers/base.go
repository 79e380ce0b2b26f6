package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/radhian/order-validation-system/bootstrap"
	"github.com/radhian/order-validation-system/config"
	"github.com/radhian/order-validation-system/handler"
	"github.com/radhian/order-validation-system/middlewares"
)

type App struct {
	*bootstrap.App
	Router *mux.Router
}

func (a *App) Initialize(ctx context.Context, cfg config.Config) error {
	base, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	a.App = base

	a.Router = mux.NewRouter().StrictSlash(true)
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router.Use(middlewares.LoggingMiddleware, middlewares.SetContentTypeMiddleware)
	a.Router.Handle("/metrics", a.Metrics.Handler()).Methods("GET")
	RegisterValidationRoutes(a.Router, handler.NewValidationHandler(a.Usecase))
}

func (a *App) RunServer() {
	port := a.Config.HTTPPort

	log.Printf("Server starting on port %v", port)
	log.Fatal(http.ListenAndServe(":"+port, a.Router))
}
