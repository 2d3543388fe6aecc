// Package server arma el servicio completo a partir de la configuración:
// store, cache, issuer, mailer, services, controllers y router.
// Es el único lugar donde se decide postgres vs memoria y memory vs redis.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/comanda/internal/cache"
	cachemem "github.com/dropDatabas3/comanda/internal/cache/memory"
	cacheredis "github.com/dropDatabas3/comanda/internal/cache/redis"
	"github.com/dropDatabas3/comanda/internal/config"
	"github.com/dropDatabas3/comanda/internal/email"
	authctrl "github.com/dropDatabas3/comanda/internal/http/controllers/auth"
	catalogctrl "github.com/dropDatabas3/comanda/internal/http/controllers/catalog"
	floorctrl "github.com/dropDatabas3/comanda/internal/http/controllers/floor"
	healthctrl "github.com/dropDatabas3/comanda/internal/http/controllers/health"
	inventoryctrl "github.com/dropDatabas3/comanda/internal/http/controllers/inventory"
	ordersctrl "github.com/dropDatabas3/comanda/internal/http/controllers/orders"
	registersctrl "github.com/dropDatabas3/comanda/internal/http/controllers/registers"
	"github.com/dropDatabas3/comanda/internal/http/controllers/resources"
	staffctrl "github.com/dropDatabas3/comanda/internal/http/controllers/staff"
	"github.com/dropDatabas3/comanda/internal/http/router"
	"github.com/dropDatabas3/comanda/internal/http/services"
	jwtx "github.com/dropDatabas3/comanda/internal/jwt"
	"github.com/dropDatabas3/comanda/internal/metrics"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
	"github.com/dropDatabas3/comanda/internal/rate"
	"github.com/dropDatabas3/comanda/internal/session"
	"github.com/dropDatabas3/comanda/internal/store/core"
	storemem "github.com/dropDatabas3/comanda/internal/store/memory"
	"github.com/dropDatabas3/comanda/internal/store/pg"
	"github.com/dropDatabas3/comanda/internal/upload"
)

// Build arma el handler raíz con todas las dependencias cableadas.
// Devuelve también un cleanup que cierra lo que haya que cerrar.
func Build(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	// 1. Store
	repo, pinger, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// 2. Cache
	c, err := buildCache(cfg)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	// 3. Issuer, mailer, media
	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, cfg.JWT.Secret, cfg.SessionTTL())
	mailer := email.NewMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	media := upload.Config{
		Root:         cfg.Media.Root,
		BaseURL:      cfg.Media.BaseURL,
		MaxBytes:     cfg.Media.MaxBytes,
		AllowedMIMEs: cfg.Media.AllowedMIMEs,
	}

	// 4. Services
	svcs := services.New(services.Deps{
		Repo:     repo,
		Cache:    c,
		CacheTTL: cfg.CacheDefaultTTL(),
		Issuer:   issuer,
		Mailer:   mailer,
		Media:    media,
	})

	// 5. Sesión y rate limit de login
	auth := &session.Authenticator{Verifier: issuer, Staff: repo}
	var limiter *rate.Limiter
	if cfg.Rate.Enabled {
		limiter = rate.NewLimiter(c, cfg.Rate.Login.Limit, cfg.LoginRateWindow(), "rate:login")
	}

	// 6. Métricas
	metricsHandler := metrics.Register(prometheus.DefaultRegisterer)

	// 7. Router
	handler, err := router.New(router.Deps{
		Policy:        router.DefaultPolicy(),
		Authenticator: auth,
		LoginLimiter:  limiter,

		Auth:      authctrl.NewController(svcs.Auth),
		Health:    healthctrl.NewController(pinger),
		Staff:     staffctrl.NewController(svcs.Staff),
		Recipes:   catalogctrl.NewRecipesController(svcs.Catalog),
		Inventory: inventoryctrl.NewController(svcs.Inventory),
		Floor:     floorctrl.NewController(svcs.Floor),
		Orders:    ordersctrl.NewController(svcs.Orders),
		Registers: registersctrl.NewController(svcs.Registers),

		Categories:    resources.NewCategoriesController(svcs.Catalog, media),
		Subcategories: resources.NewSubcategoriesController(svcs.Catalog, media),
		Ingredients:   resources.NewIngredientsController(svcs.Catalog, media),
		Products:      resources.NewProductsController(svcs.Catalog, media),

		MediaDir:    cfg.Media.Root,
		MetricsHTTP: metricsHandler,
	})
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	logger.L().Info("servicio armado",
		logger.String("storage", cfg.Storage.Driver),
		logger.String("cache", cfg.Cache.Kind),
		logger.Bool("rate_limit", cfg.Rate.Enabled),
		logger.Bool("mailer", mailer.Enabled()),
	)
	return handler, cleanup, nil
}

// buildStore abre el backend de persistencia según storage.driver.
func buildStore(ctx context.Context, cfg *config.Config) (core.Repository, healthctrl.Pinger, func() error, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		st, err := pg.Connect(ctx, pg.Config{
			DSN:          cfg.Storage.DSN,
			MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return st, st, func() error { st.Close(); return nil }, nil

	case "memory":
		st := storemem.New()
		return st, st, func() error { return nil }, nil

	default:
		return nil, nil, nil, fmt.Errorf("server: storage.driver desconocido %q", cfg.Storage.Driver)
	}
}

func buildCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Kind {
	case "redis":
		if cfg.Cache.Redis.Addr == "" {
			return nil, fmt.Errorf("server: cache.kind=redis requiere addr (COMANDA_REDIS_ADDR)")
		}
		return cacheredis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix), nil
	case "memory":
		return cachemem.New(cfg.CacheDefaultTTL()), nil
	default:
		return nil, fmt.Errorf("server: cache.kind desconocido %q", cfg.Cache.Kind)
	}
}
