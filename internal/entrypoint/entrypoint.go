package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alexkarpov/timeline-convert/internal/config"
	"github.com/alexkarpov/timeline-convert/internal/history"
	http_controllers "github.com/alexkarpov/timeline-convert/internal/http"
	"github.com/alexkarpov/timeline-convert/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Infof("shutting down, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server shutdown failed")
	}

	logrus.Info("server exiting")
}

// Run wires the conversion service, optional run history and router,
// then serves.
func Run(cfg *config.Config, version string) {
	logrus.Infof("starting timeline-convert v%s", version)

	var store *history.Store
	if cfg.History.Enabled {
		var err error
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open run history")
		}
		logrus.WithField("path", cfg.History.Path).Info("run history enabled")
	}

	service := services.NewConvertService(recorderOrNil(store))

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Service:         service,
		History:         store,
		Version:         version,
		MaxUploadSizeMB: cfg.HTTP.MaxUploadSizeMB,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if store != nil {
			if err := store.Close(); err != nil {
				logrus.WithError(err).Warn("failed to close run history")
			}
		}
	})
}

// recorderOrNil avoids handing the service a non-nil interface wrapping
// a nil *history.Store.
func recorderOrNil(store *history.Store) services.RunRecorder {
	if store == nil {
		return nil
	}
	return store
}
