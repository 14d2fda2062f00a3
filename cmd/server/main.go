package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/config"
	"quizadmin/internal/console"
	"quizadmin/internal/gateway"
	"quizadmin/internal/handler"
	"quizadmin/internal/router"
	"quizadmin/internal/session"
	"quizadmin/internal/storage"
)

// @title Quiz Admin Console API
// @version 1.0
// @description Operator console for the quiz backend: session, paged list screens, forms and deletes.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("session storage init: %v", err)
	}
	defer store.Close()

	sess := session.New(store)
	state := sess.Hydrate(context.Background())
	log.Printf("session restored: %s", state.Status)

	client := apiclient.New(cfg.APIBaseURL, sess, apiclient.WithTimeout(cfg.APITimeout))
	app := console.New(cfg, gateway.New(client), sess)

	e := echo.New()
	e.Use(middleware.RequestID())

	router.Register(
		e,
		cfg,
		sess,
		handler.NewAuthHandler(app),
		handler.NewResourceHandler(app),
	)

	log.Printf("Backend API: %s", cfg.APIBaseURL)
	log.Printf("Swagger documentation available at: %s", swaggerURL(cfg))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// swaggerURL may receive a host with or without scheme.
func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
