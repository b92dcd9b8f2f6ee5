package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avoronin/shop_api/internal/config"
	"github.com/avoronin/shop_api/internal/es"
	"github.com/avoronin/shop_api/internal/httpserver"
	"github.com/avoronin/shop_api/internal/mykafka"
	"github.com/avoronin/shop_api/internal/repo"
	"github.com/avoronin/shop_api/internal/service"
	pkgdb "github.com/avoronin/shop_api/pkg/db"
	"github.com/avoronin/shop_api/pkg/logging"
	loggingmw "github.com/avoronin/shop_api/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	gormRepo := &repo.GormRepo{DB: db}
	cartService := &service.CartService{Repo: gormRepo}
	catalogService := &service.CatalogService{Repo: gormRepo}
	categoryService := &service.CategoryService{Repo: gormRepo}
	authService := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}

	deps := &httpserver.Deps{
		CartHandler:     &httpserver.CartHTTP{Svc: cartService, Producer: producer},
		CategoryHandler: &httpserver.CategoryHTTP{Svc: categoryService, Catalog: catalogService},
		AuthHandler:     &httpserver.AuthHTTP{Svc: authService, Producer: producer},
		JWTSecret:       cfg.JWTSecret,
	}

	productHandler := &httpserver.ProductHTTP{Svc: catalogService, Producer: producer, Index: "products"}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		productHandler.ES = esClient
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "products"}
	}
	deps.ProductHandler = productHandler

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("shop_api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("server stopped")
}
