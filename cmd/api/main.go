package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/tenantward/tenantward/modules/auth"
	"github.com/tenantward/tenantward/modules/products"
	"github.com/tenantward/tenantward/modules/tenants"
	"github.com/tenantward/tenantward/pkg/config"
	"github.com/tenantward/tenantward/pkg/httpserver"
	"github.com/tenantward/tenantward/pkg/jwt"
	"github.com/tenantward/tenantward/pkg/logger"
	"github.com/tenantward/tenantward/pkg/pg"
	"github.com/tenantward/tenantward/pkg/redis"
	"github.com/tenantward/tenantward/pkg/requestid"
	"github.com/tenantward/tenantward/pkg/scope"
	"github.com/tenantward/tenantward/pkg/tenant"
)

type appConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"tenantward-api"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// TenantSeedPath points at a YAML file of tenants to upsert at boot.
	// Empty disables seeding.
	TenantSeedPath string `env:"TENANT_SEED_PATH"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("api terminated", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg    appConfig
		httpCfg   httpserver.Config
		pgCfg     pg.Config
		redisCfg  redis.Config
		tenantCfg tenant.Config
		authCfg   auth.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&tenantCfg)
	config.MustLoad(&authCfg)

	logOpts := []logger.Option{
		logger.WithAttr(logger.Component("api")),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	}
	if appCfg.Environment == "production" {
		logOpts = append(logOpts, logger.WithProduction(appCfg.ServiceName))
	} else {
		logOpts = append(logOpts, logger.WithDevelopment(appCfg.ServiceName))
	}
	log := logger.New(logOpts...)
	slog.SetDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// Tenant lookups go through two cache layers: a per-instance in-memory
	// cache in front of a Redis cache shared across instances, with
	// Postgres as the source of truth.
	tenantRepo := tenants.NewPGRepository(pool)
	var tenantStore tenant.Store = tenantRepo
	tenantStore = tenant.NewRedisStore(redisClient, tenantStore, tenantCfg.CacheTTL)
	tenantStore = tenant.NewCachedStore(tenantStore, tenantCfg.CacheTTL, tenantCfg.CacheSize)

	if appCfg.TenantSeedPath != "" {
		seeds, err := tenants.LoadSeedFile(appCfg.TenantSeedPath)
		if err != nil {
			return err
		}
		if err := tenants.Apply(ctx, tenantRepo, seeds, log); err != nil {
			return err
		}
	}

	authSvc, err := auth.NewService(auth.NewPGRepository(pool), authCfg, log)
	if err != nil {
		return err
	}
	jwtSvc, err := jwt.NewService([]byte(authCfg.SigningKey))
	if err != nil {
		return err
	}

	resolver := tenant.NewResolverFromConfig(tenantCfg,
		tenant.WithClaimLookup(jwt.TenantClaimFromContext))
	validator := tenant.NewValidatorFromConfig(tenantStore, tenantCfg, log)

	registry := scope.NewRegistry()
	registry.MustRegister(products.EntityKind, scope.Filter{
		TenantColumn:     "tenant_id",
		SoftDeleteColumn: "deleted_at",
	})

	productRepo := products.NewPGRepository(pool, registry)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	// Token validation runs before tenant resolution so the resolver can
	// read the tenant claim. Optional: anonymous requests fall through to
	// the header and default sources.
	r.Use(jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{Service: jwtSvc, Optional: true}))
	r.Use(tenant.MiddlewareFromConfig(resolver, validator, tenantCfg))

	r.Get("/health", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	// Deactivation must bust both cache layers or the validator keeps
	// accepting the tenant until the TTL runs out.
	invalidateTenant := func(ctx context.Context, id string) {
		tenant.Invalidate(tenantStore, id)
		if err := tenant.InvalidateRedis(ctx, redisClient, id); err != nil {
			log.ErrorContext(ctx, "tenant cache invalidation failed",
				logger.TenantID(id), logger.Error(err))
		}
	}

	r.Mount("/auth", auth.NewRouter(authSvc, log))
	r.Mount("/tenants", tenants.NewRouter(tenantRepo, log,
		tenants.WithCacheInvalidation(invalidateTenant)))
	r.Mount("/api/products", products.NewRouter(
		products.NewCommands(productRepo, log),
		products.NewQueries(productRepo),
		log,
	))

	var handler http.Handler = r
	return httpserver.New(httpCfg, log).Run(ctx, handler)
}
