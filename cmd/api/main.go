package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campuschain/access-layer/internal/access"
	"github.com/campuschain/access-layer/internal/actions"
	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/api/middleware"
	"github.com/campuschain/access-layer/internal/api/rest"
	"github.com/campuschain/access-layer/internal/api/server"
	"github.com/campuschain/access-layer/internal/config"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/entity"
	"github.com/campuschain/access-layer/internal/identity"
	"github.com/campuschain/access-layer/internal/ledger"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/messaging"
	"github.com/campuschain/access-layer/internal/policy"
	"github.com/campuschain/access-layer/internal/ratelimit"
	"github.com/campuschain/access-layer/internal/reconcile"
	"github.com/campuschain/access-layer/internal/relayer"
	"github.com/campuschain/access-layer/internal/store"
	"github.com/campuschain/access-layer/internal/store/schema"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "access-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting CampusChain access API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()

	// Connect to the ledger RPC endpoint
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ledger.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to ledger RPC", zap.Error(err), zap.String("url", cfg.Ledger.RPCURL))
	}
	defer ethClient.Close()
	logger.InfoCtx(ctx, "Connected to ledger RPC", zap.String("chain_id", string(cfg.Ledger.ChainID)))

	// Load the legacy course token registry
	var legacyTokens map[string]uint64
	if cfg.LegacyRegistryPath != "" {
		legacyLoader := entity.NewLegacyRegistryLoader(fs, jsonAdapter)
		legacyTokens, err = legacyLoader.Load(cfg.LegacyRegistryPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load legacy token registry",
				zap.Error(err),
				zap.String("path", cfg.LegacyRegistryPath))
		}
		logger.InfoCtx(ctx, "Loaded legacy token registry",
			zap.String("path", cfg.LegacyRegistryPath),
			zap.Int("entries", len(legacyTokens)))
	}
	deriver := entity.NewDeriver(legacyTokens)

	// Load the admin policy
	var adminPolicy policy.AdminPolicy
	if cfg.AdminPolicyPath != "" {
		policyLoader := policy.NewAdminPolicyLoader(fs, jsonAdapter)
		adminPolicy, err = policyLoader.Load(cfg.AdminPolicyPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load admin policy",
				zap.Error(err),
				zap.String("path", cfg.AdminPolicyPath))
		}
		logger.InfoCtx(ctx, "Loaded admin policy", zap.String("path", cfg.AdminPolicyPath))
	} else {
		adminPolicy = policy.NewStaticAdminPolicy(nil)
		logger.WarnCtx(ctx, "Admin policy path not configured, admin endpoints are disabled")
	}

	// Ledger reader and write encoding
	book, err := ledger.NewAddressBook(cfg.Ledger.ChainID, cfg.Ledger.ContractAddress, cfg.Ledger.LegacyContractAddresses)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build ledger address book", zap.Error(err))
	}
	reader, err := ledger.NewReader(ethClient, book, clock, ledger.Config{
		ShortTTL:    cfg.Ledger.ShortTTL,
		LongTTL:     cfg.Ledger.LongTTL,
		StaleWindow: cfg.Ledger.StaleWindow,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger reader", zap.Error(err))
	}
	encoder, err := ledger.NewEncoder()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger encoder", zap.Error(err))
	}

	// Relayer client and identity resolution
	relayerClient := relayer.NewClient(cfg.Relayer.BaseURL, cfg.Relayer.APIKey, adapter.NewHTTPClient(30*time.Second))
	resolver, err := identity.NewResolver(identity.Config{
		FactoryAddress: cfg.Identity.FactoryAddress,
		AccountSalt:    cfg.Identity.AccountSalt,
		InitCodeHash:   cfg.Identity.InitCodeHash,
		InitTimeout:    cfg.Identity.InitTimeout,
	}, relayer.NewInitializer(relayerClient), dataStore)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create identity resolver", zap.Error(err))
	}

	// Settlement event publisher
	publisher, err := messaging.NewPublisher(messaging.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Optimistic access flags set right after settlement
	optimistic := access.NewOptimisticStore(clock, cfg.Access.OptimisticTTL)

	// Settlement hooks: drop stale ledger cache entries, flag optimistic
	// access, record server-side enrollment, and publish the event
	onSettled := func(actor *domain.Actor, entityRef domain.EntityRef, kind domain.ActionKind, txHash string) {
		hookCtx, hookCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer hookCancel()

		var scope string
		switch entityRef.Kind {
		case domain.EntityKindCourse:
			scope = reader.CourseScope(deriver.CourseTokenID(entityRef.Slug, entityRef.ID))
		default:
			scope = reader.ContestScope(deriver.NumericID(entityRef.ID))
		}
		reader.InvalidateActorEntity(actor.ExecutionAddress(), scope)

		if kind == domain.ActionEnroll {
			optimistic.Set(actor.PrimaryAddress, entityRef.Key())
			err := dataStore.CreateEnrollment(hookCtx, &schema.Enrollment{
				ActorAddress:  actor.PrimaryAddress,
				CourseTokenID: deriver.CourseTokenID(entityRef.Slug, entityRef.ID),
				Source:        schema.EnrollmentSourcePurchase,
			})
			if err != nil {
				logger.ErrorCtx(hookCtx, fmt.Errorf("failed to record settled enrollment: %w", err),
					zap.String("actorAddress", actor.PrimaryAddress),
					zap.String("entity", entityRef.Key()))
			}
		}

		err := publisher.PublishSettlement(hookCtx, &domain.SettlementEvent{
			ActorAddress: actor.PrimaryAddress,
			Entity:       entityRef,
			Action:       kind,
			TxHash:       txHash,
			Chain:        cfg.Ledger.ChainID,
			OccurredAt:   clock.Now(),
		})
		if err != nil {
			logger.ErrorCtx(hookCtx, fmt.Errorf("failed to publish settlement event: %w", err),
				zap.String("txHash", txHash))
		}
	}

	// Sponsored transaction executor
	executor := relayer.NewExecutor(relayerClient, ethClient, clock, relayer.Config{
		GraceDelay:      cfg.Relayer.GraceDelay,
		PollInterval:    cfg.Relayer.PollInterval,
		MaxPollAttempts: cfg.Relayer.MaxPollAttempts,
		HandleRetention: cfg.Relayer.HandleRetention,
	}, onSettled)

	// Submission id reconciliation pool
	reconciler := reconcile.NewService(dataStore, reader, clock, reconcile.Config{
		Grace:                cfg.Reconcile.Grace,
		MaxAttempts:          cfg.Reconcile.MaxAttempts,
		InitialRetryInterval: cfg.Reconcile.InitialRetryInterval,
		Workers:              cfg.Reconcile.Workers,
		QueueSize:            cfg.Reconcile.QueueSize,
	})
	defer reconciler.StopAndWait()

	// Domain services
	accessService := access.NewService(dataStore, reader, deriver, optimistic)
	actionService := actions.NewService(deriver, reader, encoder, book, executor, dataStore, reconciler, optimistic, jcsAdapter, clock)

	// Per-actor write rate limiting
	limiter, err := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
	}, adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}
	defer func() {
		if err := limiter.Close(); err != nil {
			logger.Error(err, zap.String("component", "rate_limiter"))
		}
	}()

	// HTTP layer
	handler := rest.NewHandler(resolver, accessService, actionService, dataStore, deriver, adminPolicy)
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, handler, middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	}, limiter)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
