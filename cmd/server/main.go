package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"restaurant-reservation/internal/config"
	"restaurant-reservation/internal/es"
	"restaurant-reservation/internal/handlers"
	"restaurant-reservation/internal/logging"
	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/mykafka"
	"restaurant-reservation/internal/repository"
	"restaurant-reservation/internal/service/reports"
	"restaurant-reservation/internal/service/token"
	httpserver "restaurant-reservation/internal/transport/http"
	"restaurant-reservation/internal/validate"
	"restaurant-reservation/pkg/db"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, configuration.DSN())
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := config.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(strings.Split(configuration.KAFKA_ADDRESS, ","))
	}

	var searchHandler *handlers.SearchHandler
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: configuration.ES_INDEX}
	}

	refCheck := validate.NewRefCheck(gormDB)
	reportSvc := reports.NewService(gormDB)
	tokenSvc := &token.Service{DB: gormDB, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))
	e.Validator = validate.NewRequestValidator()

	deps := httpserver.Deps{
		DB:        gormDB,
		JWTSecret: jwtSecret,
		AuthHandler: &handlers.AuthHandler{
			DB: gormDB, Tokens: tokenSvc, Producer: producer,
		},
		CustomerHandler: &handlers.CustomerHandler{
			Repo: repository.NewRepo[models.Customer](gormDB), Producer: producer,
		},
		RestaurantHandler: &handlers.RestaurantHandler{
			Repo: repository.NewRepo[models.Restaurant](gormDB), Reports: reportSvc, Producer: producer,
		},
		TableHandler: &handlers.TableHandler{
			Repo: repository.NewRepo[models.Table](gormDB), Ref: refCheck, Producer: producer,
		},
		EmployeeHandler: &handlers.EmployeeHandler{
			Repo: repository.NewRepo[models.Employee](gormDB), Ref: refCheck, Reports: reportSvc, Producer: producer,
		},
		ReservationHandler: &handlers.ReservationHandler{
			Repo: repository.NewRepo[models.Reservation](gormDB), Ref: refCheck, Reports: reportSvc, Producer: producer,
		},
		OrderHandler: &handlers.OrderHandler{
			Repo: repository.NewRepo[models.Order](gormDB), Ref: refCheck, Producer: producer,
		},
		OrderItemHandler: &handlers.OrderItemHandler{
			Repo: repository.NewOrderItemRepo(gormDB), Ref: refCheck, Producer: producer,
		},
		MenuItemHandler: &handlers.MenuItemHandler{
			Repo: repository.NewRepo[models.MenuItem](gormDB), Ref: refCheck, Producer: producer,
		},
		ReportsHandler: &handlers.ReportsHandler{Reports: reportSvc},
		SearchHandler:  searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
