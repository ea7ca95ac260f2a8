package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/corray333/order-management/internal/dal/postgres"
	"github.com/corray333/order-management/internal/dal/rabbitmq"
	outboxrepo "github.com/corray333/order-management/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/order-management/internal/otel"
	"github.com/corray333/order-management/internal/service/services/ordersvc"
	"github.com/corray333/order-management/internal/service/services/productsvc"
	httptransport "github.com/corray333/order-management/internal/transport/http"
	outboxworker "github.com/corray333/order-management/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	productSvc     *productsvc.ProductService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	productSvc := productsvc.MustNewProductService(
		productsvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, productSvc)
	transport.RegisterRoutes()

	a := &App{
		orderSvc:       orderSvc,
		productSvc:     productSvc,
		transport:      transport,
		postgresClient: postgresClient,
		otelController: otelController,
	}

	// The broker is optional: without it outbox rows accumulate until a
	// worker picks them up.
	if viper.GetBool("rabbitmq.enabled") {
		rabbitClient := rabbitmq.MustNewClient()

		queueName := viper.GetString("rabbitmq.order_events.queue")
		if queueName == "" {
			queueName = "oms.order.events"
		}
		if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
			Name:    queueName,
			Durable: true,
		}); err != nil {
			panic(err)
		}

		a.rabbitClient = rabbitClient
		a.outboxWorker = outboxworker.NewWorker(
			outboxrepo.NewOutboxRepository(postgresClient.Pool()),
			rabbitClient,
		)
	}

	return a
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if a.outboxWorker != nil {
		go a.outboxWorker.Start(workerCtx)
	}

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
