package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	// Adapters
	redisCache "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/cache/redis"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/email"
	grpcAdapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/grpc"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/httpapi"
	natsAdapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/repository/memory"
	mongoRepo "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/repository/mongodb"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/identity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/usecase"

	// Platform
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const (
	shutdownTimeout     = 10 * time.Second
	historySweepEvery   = time.Minute
	readHeaderTimeout   = 5 * time.Second
	mongoConnectTimeout = 10 * time.Second
)

// storage is the set of repositories the services run on.
type storage struct {
	tx       domain.Transactor
	sweets   domain.SweetRepository
	orders   domain.OrderRepository
	reviews  domain.ReviewRepository
	users    domain.UserRepository
	contacts domain.ContactRepository
	carts    domain.CartRepository
	close    func()
}

func main() {
	// Load .env file (optional, for local development)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Initialize Logger
	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	// 2. Load Configuration
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	serviceName := cfg.ServiceName
	appLogger.Info("Application starting...", zap.String("service_name", serviceName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Initialize OpenTelemetry Tracer
	tp, err := tracer.InitTracer(ctx, serviceName, cfg.OTExporterOTLPEndpoint, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	// 4. Open the store
	store, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer store.close()

	// 5. Redis: carts and the catalog cache
	var catalogCache domain.CatalogCache
	if cfg.Redis.Enabled() {
		redisClient, err := redisCache.NewClient(ctx, cfg.Redis, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				appLogger.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		store.carts = redisCache.NewCartRepository(redisClient, cfg.Redis.CartTTL)
		catalogCache = redisCache.NewCatalogCache(redisClient, cfg.Redis.CatalogCacheTTL)
	} else {
		appLogger.Info("Redis not configured: carts live in process memory and the catalog is not cached.")
	}

	// 6. NATS publisher
	var publisher usecase.EventPublisher = usecase.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, serviceName)
		if err != nil {
			appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	} else {
		appLogger.Info("NATS not configured: domain events are dropped.")
	}

	// 7. SMTP mailer
	var mailer usecase.Mailer
	if cfg.SMTP.Enabled() {
		sender, err := email.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize SMTP sender", zap.Error(err))
		}
		mailer = sender
	} else {
		appLogger.Info("SMTP not configured: review invitations are not emailed.")
	}

	// 8. Metrics
	metricsManager := metrics.NewMetricsManager(serviceName)
	metricsSrv := metrics.NewMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry)
	if metricsSrv != nil {
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// 9. Usecases
	catalog := usecase.NewCatalogService(store.sweets, catalogCache, appLogger)
	reviews := usecase.NewReviewService(store.tx, store.sweets, store.reviews, store.users, catalog, publisher, metricsManager, appLogger)
	history := usecase.NewHistoryService(store.orders, reviews, metricsManager, appLogger)
	carts := usecase.NewCartService(store.carts, store.sweets, store.orders, store.users, publisher, metricsManager, appLogger)
	accounts := usecase.NewAccountService(store.users, store.contacts, appLogger)
	admin := usecase.NewAdminService(store.users, store.sweets, store.orders, store.contacts, reviews, catalog, mailer, publisher, metricsManager, appLogger)

	historyPages := httpapi.NewHistoryPages(history, cfg.HistorySessionTTL, appLogger)
	go historyPages.Run(ctx, historySweepEvery)

	// 10. HTTP server
	router := httpapi.NewRouter(serviceName, httpapi.Handlers{
		Catalog: httpapi.NewCatalogHandler(catalog, appLogger),
		Cart:    httpapi.NewCartHandler(carts, appLogger),
		Account: httpapi.NewAccountHandler(accounts, appLogger),
		History: httpapi.NewHistoryHandler(historyPages, appLogger),
		Admin:   httpapi.NewAdminHandler(admin, appLogger),
	}, identity.NewVerifier(cfg.JWTSecret), metricsManager, appLogger)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 11. gRPC server (health and reflection)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		appLogger.Fatal("Failed to listen for gRPC", zap.String("port", cfg.GRPCPort), zap.Error(err))
	}
	grpcSrv := grpcAdapter.NewGRPCServer(appLogger)
	grpcSrv.SetServing(serviceName, true)
	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.GRPCPort))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Fatal("gRPC server Serve error", zap.Error(err))
		}
	}()

	// 12. Graceful Shutdown
	<-ctx.Done()
	appLogger.Info("Received shutdown signal")

	grpcSrv.SetServing(serviceName, false)

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Metrics server shutdown failed", zap.Error(err))
		}
	}
	grpcSrv.GracefulStop()

	appLogger.Info("Application shutting down...")
}

// openStorage connects the configured store driver.
func openStorage(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*storage, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		appLogger.Warn("Using the in-memory store: data is lost on restart.")
		mem := memory.NewStore()
		return &storage{
			tx:       mem,
			sweets:   mem.Sweets(),
			orders:   mem.Orders(),
			reviews:  mem.Reviews(),
			users:    mem.Users(),
			contacts: mem.Contacts(),
			carts:    mem.Carts(),
			close:    func() {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()
	client, err := mongoRepo.Connect(connectCtx, cfg.MongoURI, appLogger)
	if err != nil {
		return nil, err
	}
	repos, err := mongoRepo.NewRepositories(client, client.Database(cfg.MongoDatabase), appLogger)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	// Carts stay in process memory unless Redis takes them over.
	mem := memory.NewStore()
	return &storage{
		tx:       repos.Transactor,
		sweets:   repos.Sweets,
		orders:   repos.Orders,
		reviews:  repos.Reviews,
		users:    repos.Users,
		contacts: repos.Contacts,
		carts:    mem.Carts(),
		close: func() {
			appLogger.Info("Disconnecting from MongoDB...")
			if err := client.Disconnect(context.Background()); err != nil {
				appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		},
	}, nil
}
