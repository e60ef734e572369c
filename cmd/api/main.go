package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "repayment-engine/internal/adapter/http"
	idemp "repayment-engine/internal/adapter/middleware"
	"repayment-engine/internal/adapter/repository/gormstore"
	"repayment-engine/internal/config"
	"repayment-engine/internal/infrastructure/cache"
	"repayment-engine/internal/infrastructure/db"
	"repayment-engine/internal/infrastructure/logging"
	ucloan "repayment-engine/internal/usecase/loan"
	ucrepayment "repayment-engine/internal/usecase/repayment"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.WithError(err).Fatal("migrate database")
		}
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("open redis")
	}
	defer rdb.Close()

	loans := gormstore.NewLoanRepository(gdb)
	schedules := gormstore.NewScheduleRepository(gdb)
	repayments := gormstore.NewRepaymentRepository(gdb)
	tx := gormstore.NewGormUoW(gdb)

	loanUC := ucloan.NewUsecase(loans, schedules, tx, log)
	repaymentUC := ucrepayment.NewUsecase(loans, repayments, tx, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(idemp.Idempotency(idemp.IdempotencyConfig{
		Redis:  rdb,
		TTL:    time.Duration(cfg.IdempTTLSecs) * time.Second,
		Logger: log,
	}))

	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("database handle")
	}
	httpadp.Register(e,
		httpadp.NewHandler(sqlDB.PingContext),
		httpadp.NewLoanHandler(loanUC),
		httpadp.NewRepaymentHandler(repaymentUC),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
