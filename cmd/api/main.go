package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"starwars/internal/config"
	"starwars/internal/database"
	"starwars/internal/pkg/logger"
	"starwars/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.WithError(err).Fatal("invalid log settings")
	}
	gin.SetMode(cfg.GinMode)

	db, err := database.ConnectWithOptions(cfg.DatabaseURL, database.Options{Logger: logger.Gorm(cfg.DBLogSQL)})
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer database.Close(db)

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logrus.WithError(err).Fatal("auto migrate failed")
		}
	}

	srv := server.New(server.Deps{
		DB:             db,
		AdminSecretKey: cfg.AdminSecretKey,
		AdminTokenTTL:  cfg.AdminTokenTTL,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":  cfg.Port,
			"admin": cfg.AdminEnabled(),
		}).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
