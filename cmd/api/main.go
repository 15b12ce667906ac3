package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/Hasan-Creations/MobiSwap/api"
	"github.com/Hasan-Creations/MobiSwap/api/routes"
	"github.com/Hasan-Creations/MobiSwap/internal/advisory"
	"github.com/Hasan-Creations/MobiSwap/internal/cart"
	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	"github.com/Hasan-Creations/MobiSwap/internal/checkout"
	"github.com/Hasan-Creations/MobiSwap/internal/exchange"
	"github.com/Hasan-Creations/MobiSwap/internal/orders"
	"github.com/Hasan-Creations/MobiSwap/pkg/config"
	"github.com/Hasan-Creations/MobiSwap/pkg/db"
	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	"github.com/Hasan-Creations/MobiSwap/pkg/events"
	"github.com/Hasan-Creations/MobiSwap/pkg/gemini"
	"github.com/Hasan-Creations/MobiSwap/pkg/llm"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/metrics"
	"github.com/Hasan-Creations/MobiSwap/pkg/migrate"
	"github.com/Hasan-Creations/MobiSwap/pkg/pubsub"
	"github.com/Hasan-Creations/MobiSwap/pkg/rabbitmq"
	"github.com/Hasan-Creations/MobiSwap/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

type closer interface {
	Close() error
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []closer
	defer func() {
		if err := closeAll(closers); err != nil {
			logg.Error(context.Background(), "error releasing resources", err)
		}
	}()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	closers = append(closers, dbClient)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	slots := cart.NewMemorySlots()
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient)
		slots = func(sessionID string) cart.Slot {
			return cart.NewRedisSlot(redisClient, redisClient.CartKey(sessionID), cfg.Cart.SnapshotTTL)
		}
	} else {
		logg.Warn(ctx, "redis not configured, carts stay in process and idempotency and rate limiting are off")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	cartMetrics := metrics.NewCartMetrics(reg)
	jobMetrics := metrics.NewJobMetrics(reg)
	advisoryMetrics := metrics.NewAdvisoryMetrics(reg)

	var generator llm.Generator = llm.Unavailable{}
	if cfg.GenAI.Enabled() {
		gen, err := gemini.New(ctx, cfg.GenAI, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap genai client", err)
			os.Exit(1)
		}
		generator = gen
	} else {
		logg.Warn(ctx, "genai api key not set, advisory flows will fail")
	}

	publisher, eventClosers, err := newEventPublisher(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap event publisher", err)
		os.Exit(1)
	}
	closers = append(closers, eventClosers...)
	emitter := events.NewEmitter(publisher, map[enums.EventType]string{
		enums.EventTypeOrderPlaced:       cfg.Events.OrdersTopic,
		enums.EventTypeExchangeRequested: cfg.Events.ExchangeTopic,
	}, cfg.Events.PublishTimeout(), logg)

	products := catalog.Default()

	carts := cart.NewRegistry(slots, logg,
		cart.WithIdleTTL(cfg.Cart.SessionIdleTTL),
		cart.WithRegistryObservers(cart.LogObserver(logg, cartMetrics)),
		cart.WithRegistryMetrics(cartMetrics, jobMetrics),
	)
	go carts.Run(ctx, cfg.Cart.SweepInterval)

	gateway := advisory.NewGateway(generator, products, logg, advisoryMetrics)

	orderSvc, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutSvc, err := checkout.NewService(carts, orderSvc, emitter, logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	exchangeSvc, err := exchange.NewService(exchange.NewRepository(dbClient.DB()), emitter, logg)
	if err != nil {
		logg.Error(ctx, "failed to create exchange service", err)
		os.Exit(1)
	}

	server := api.NewServer(cfg, routes.NewRouter(cfg, logg, routes.Dependencies{
		DB:       dbClient,
		Redis:    redisClient,
		Catalog:  products,
		Carts:    carts,
		Advisory: gateway,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Exchange: exchangeSvc,
		Gatherer: reg,
	}))

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           server.Addr,
		"events_backend": cfg.Events.NormalizedBackend(),
		"genai_model":    cfg.GenAI.Model,
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			return
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(logCtx, "graceful shutdown failed", err)
	}
	logg.Info(logCtx, "api server stopped")
}

// newEventPublisher picks the broker named by the events backend setting.
func newEventPublisher(ctx context.Context, cfg *config.Config, logg *logger.Logger) (events.Publisher, []closer, error) {
	switch cfg.Events.NormalizedBackend() {
	case config.EventsBackendPubSub:
		client, err := pubsub.NewClient(ctx, cfg.GCP, cfg.Events, logg)
		if err != nil {
			return nil, nil, err
		}
		return client, []closer{client}, nil
	case config.EventsBackendRabbitMQ:
		pool, err := rabbitmq.NewChannelPool(ctx, cfg.RabbitMQ, []string{cfg.Events.OrdersTopic, cfg.Events.ExchangeTopic}, logg)
		if err != nil {
			return nil, nil, err
		}
		return rabbitmq.NewPublisher(pool), []closer{pool}, nil
	default:
		return events.Noop{}, nil, nil
	}
}

// closeAll releases resources in reverse acquisition order.
func closeAll(closers []closer) error {
	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, closers[i].Close())
	}
	return err
}
