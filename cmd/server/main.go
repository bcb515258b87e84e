package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/DevM0rales/NerdHub-Project/internal/config"
	"github.com/DevM0rales/NerdHub-Project/internal/es"
	"github.com/DevM0rales/NerdHub-Project/internal/handlers"
	"github.com/DevM0rales/NerdHub-Project/internal/logging"
	"github.com/DevM0rales/NerdHub-Project/internal/middleware"
	"github.com/DevM0rales/NerdHub-Project/internal/mykafka"
	"github.com/DevM0rales/NerdHub-Project/internal/service"
	"github.com/DevM0rales/NerdHub-Project/internal/service/token"
	httpserver "github.com/DevM0rales/NerdHub-Project/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	config.MustNonEmpty(configuration.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.REFRESH_SECRET, "REFRESH_SECRET")

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(context.Background(), configuration.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	prod, err := mykafka.NewProducer(configuration.KafkaBrokers)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:             db,
		AuthHandler:    &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		CatalogHandler: &handlers.CatalogHandler{Svc: &service.CatalogService{DB: db}, Producer: prod},
		CartHandler:    &handlers.CartHandler{Svc: &service.CartService{DB: db}, Producer: prod},
		OrderHandler:   &handlers.OrderHandler{Svc: &service.OrderService{DB: db}, Cart: &service.CartService{DB: db}, Producer: prod},
		ReviewHandler:  &handlers.ReviewHandler{Svc: &service.ReviewService{DB: db}},
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: "products"},
		TokenService:   &token.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
