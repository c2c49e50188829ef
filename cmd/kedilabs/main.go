package main

import (
	"context"
	"errors"
	"kedilabs/internal/app"
	"kedilabs/internal/app/consumers"
	"kedilabs/internal/app/deps"
	"kedilabs/internal/app/services"
	"kedilabs/internal/config"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dl "kedilabs/internal/core/domain/logging"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		panic(err)
	}

	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	backgroundCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	if services.NotificationPool != nil {
		services.NotificationPool.Start(backgroundCtx)
	}
	shutdownConsumers := consumers.InitConsumers(backgroundCtx, deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, services, func() {
		shutdownConsumers()
		cancelBackground()
		shutdownDeps()
	})
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("environment", deps.Config.Environment()),
		dl.Entry("rabbitmq", deps.Rabbitmq != nil),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	deps *deps.Deps,
	services *services.Services,
	shutDownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	if services.NotificationPool != nil {
		if err := services.NotificationPool.Stop(ctx); err != nil {
			deps.Logger.Warning(ctx, "Pending notifications were dropped.", dl.Entry("err", err))
		}
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
