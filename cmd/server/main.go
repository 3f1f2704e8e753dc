package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	appaudit "github.com/workify/backend/internal/application/audit"
	appbudget "github.com/workify/backend/internal/application/budget"
	appclient "github.com/workify/backend/internal/application/client"
	appdict "github.com/workify/backend/internal/application/dict"
	appemployee "github.com/workify/backend/internal/application/employee"
	identityapp "github.com/workify/backend/internal/application/identity"
	appproject "github.com/workify/backend/internal/application/project"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/auth"
	"github.com/workify/backend/internal/infrastructure/cache"
	"github.com/workify/backend/internal/infrastructure/config"
	"github.com/workify/backend/internal/infrastructure/event"
	"github.com/workify/backend/internal/infrastructure/logger"
	"github.com/workify/backend/internal/infrastructure/persistence"
	"github.com/workify/backend/internal/infrastructure/sso"
	"github.com/workify/backend/internal/infrastructure/storage"
	"github.com/workify/backend/internal/infrastructure/telemetry"
	"github.com/workify/backend/internal/interfaces/http/handler"
	"github.com/workify/backend/internal/interfaces/http/middleware"
	"github.com/workify/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/workify/backend/docs"
)

//	@title			Workify API
//	@version		1.0
//	@description	Back office API: clients and contracts, budgets and projects, employees, dictionaries and audit history.

//	@contact.name	Workify Team
//	@contact.email	dev@workify.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	log = providers.BridgeLogger(log, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting Workify backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	meter := providers.Meter("workify")
	dbInstr, err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, meter, log)
	if err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	defer func() {
		_ = dbInstr.Close()
	}()

	// Redis is optional outside production
	redisClient, err := cache.NewRedisClient(cfg.Redis, !cfg.IsProduction(), log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
	}

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	var states identityapp.StateStore = sso.NewMemoryStateStore()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		states = sso.NewRedisStateStore(redisClient)
	}

	objects, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	slugs := shared.NewSlugGenerator()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	itemRepo := persistence.NewGormContractItemRepository(db.DB)
	invoiceRepo := persistence.NewGormSalesInvoiceRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	assignmentRepo := persistence.NewGormBudgetAssignmentRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Event bus. The audit log is written by a subscriber, so redelivered
	// events are filtered through the idempotency store.
	eventBus := event.NewInMemoryEventBus(log)
	idempotency := cache.NewIdempotencyStore(redisClient)
	idempotencyMetrics := &event.IdempotencyMetrics{}
	eventBus.Subscribe(event.NewIdempotentHandler(
		appaudit.NewRecordHandler(auditRepo, log),
		idempotency,
		log,
		event.WithIdempotencyMetrics(idempotencyMetrics),
	))
	if providers.MetricsEnabled() {
		eventMetrics, err := telemetry.NewEventMetrics(meter)
		if err != nil {
			log.Fatal("Failed to create event metrics", zap.Error(err))
		}
		eventBus.Subscribe(eventMetrics)
	}

	// Services
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, blacklist, log)
	eventBus.Subscribe(identityapp.NewUserDeactivatedHandler(authService, log))
	roleService := identityapp.NewRoleService(roleRepo, userRepo, eventBus, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, eventBus, log)
	dictService := appdict.NewService(
		persistence.NewGormCurrencyRepository(db.DB),
		persistence.NewGormDocumentTypeRepository(db.DB),
		persistence.NewGormDimensionRepository(db.DB),
		log,
	)
	auditService := appaudit.NewService(auditRepo, contractRepo, itemRepo, invoiceRepo, log)
	clientService := appclient.NewClientService(clientRepo, slugs, objects, eventBus, log)
	contractService := appclient.NewContractService(clientRepo, contractRepo, itemRepo, invoiceRepo, employeeRepo, dictService, slugs, eventBus, log)
	itemService := appclient.NewContractItemService(contractRepo, itemRepo, invoiceRepo, dictService, eventBus, log)
	invoiceService := appclient.NewInvoiceService(contractRepo, itemRepo, invoiceRepo, objects, eventBus, log)
	budgetService := appbudget.NewService(budgetRepo, dictService, eventBus, log)
	projectService := appproject.NewProjectService(projectRepo, employeeRepo, clientRepo, slugs, eventBus, log)
	assignmentService := appproject.NewAssignmentService(projectRepo, assignmentRepo, budgetRepo, eventBus, log)
	employeeService := appemployee.NewEmployeeService(employeeRepo, userRepo,
		persistence.NewGormTransactionScope(db.DB), slugs, objects, eventBus, log)
	rateService := appemployee.NewRateService(employeeRepo, rateRepo, dictService, eventBus, log)
	documentService := appemployee.NewDocumentService(employeeRepo, documentRepo, dictService, objects, eventBus, log)

	var ssoService *identityapp.SSOService
	if cfg.SSO.Enabled {
		provider, err := sso.NewAzureProvider(ctx, cfg.SSO, log)
		if err != nil {
			log.Fatal("Failed to initialize SSO provider", zap.Error(err))
		}
		ssoService = identityapp.NewSSOService(userRepo, authService, provider, states, employeeService, cfg.SSO.StateTTL, log)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
		log.Info("Event bus stopped",
			zap.Int64("duplicate_events", idempotencyMetrics.Duplicates.Load()))
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order: request id, panics, traces, access log, headers, CORS, body
	// size, rate limit, metrics
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limit, err := middleware.RateLimit(middleware.RateLimitConfig{
			Name:     "global",
			Requests: cfg.HTTP.RateLimitRequests,
			Window:   cfg.HTTP.RateLimitWindow,
			Redis:    redisClient,
			Logger:   log,
		})
		if err != nil {
			log.Fatal("Failed to create rate limiter", zap.Error(err))
		}
		engine.Use(limit)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if providers.MetricsEnabled() {
		metrics, err := middleware.HTTPMetrics(meter)
		if err != nil {
			log.Fatal("Failed to create HTTP metrics", zap.Error(err))
		}
		engine.Use(metrics)
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, healthChecks(db, redisClient)...)
	engine.GET("/health", systemHandler.Health)
	engine.NoRoute(systemHandler.NoRoute)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	var authLimiter gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter, err = middleware.RateLimit(middleware.RateLimitConfig{
			Name:     "auth",
			Requests: cfg.HTTP.AuthRateLimitRequests,
			Window:   cfg.HTTP.AuthRateLimitWindow,
			Redis:    redisClient,
			Logger:   log,
		})
		if err != nil {
			log.Fatal("Failed to create auth rate limiter", zap.Error(err))
		}
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(jwtMiddleware)
	router.RegisterAPI(r, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, ssoService),
		Role:         handler.NewRoleHandler(roleService),
		User:         handler.NewUserHandler(userService, roleService),
		Client:       handler.NewClientHandler(clientService),
		Contract:     handler.NewContractHandler(contractService, auditService),
		ContractItem: handler.NewContractItemHandler(itemService, auditService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Budget:       handler.NewBudgetHandler(budgetService),
		Project:      handler.NewProjectHandler(projectService),
		Assignment:   handler.NewAssignmentHandler(assignmentService),
		Employee:     handler.NewEmployeeHandler(employeeService),
		Rate:         handler.NewRateHandler(rateService),
		Document:     handler.NewDocumentHandler(documentService),
		Dict:         handler.NewDictHandler(dictService),
		Audit:        handler.NewAuditHandler(auditService),
		System:       systemHandler,
	}, authLimiter)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// healthChecks probes the database and, when connected, Redis
func healthChecks(db *persistence.Database, redisClient redis.UniversalClient) []handler.HealthCheck {
	checks := []handler.HealthCheck{{
		Name:  "database",
		Check: func(context.Context) error { return db.Ping() },
	}}
	if redisClient != nil {
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	return checks
}
