package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/lunchly/internal/config"
	"github.com/iliyamo/lunchly/internal/database"
	"github.com/iliyamo/lunchly/internal/handler"
	"github.com/iliyamo/lunchly/internal/logger"
	"github.com/iliyamo/lunchly/internal/metrics"
	"github.com/iliyamo/lunchly/internal/queue"
	"github.com/iliyamo/lunchly/internal/repository"
	"github.com/iliyamo/lunchly/internal/router"
	"github.com/iliyamo/lunchly/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "text").WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(database.Options{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()

	m := metrics.New()
	exec := database.NewExecutor(db, m)
	reservations := repository.NewReservationRepo(exec)
	customers := repository.NewCustomerRepo(exec, reservations)

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb, err = config.NewRedisClient(cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, rate limiting disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	publisher := &service.Publisher{URL: cfg.RabbitURL, Log: log, Metrics: m}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := &queue.Consumer{URL: cfg.RabbitURL, Dir: cfg.EventsLogDir, Log: log, Metrics: m}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("reservation consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(logger.Middleware(log))

	router.RegisterRoutes(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg),
		Customers:    handler.NewCustomerHandler(customers, reservations, publisher, log, cfg.DBTimeout),
		Reservations: handler.NewReservationHandler(customers, reservations, publisher, log, cfg.DBTimeout),
		DB:           db,
	}, cfg, rdb, log)

	addr := ":" + cfg.Port
	go func() {
		log.WithField("addr", addr).WithField("env", cfg.Env).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}
