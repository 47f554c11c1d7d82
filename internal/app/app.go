package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "magazine_cms/internal/app/http"
	"magazine_cms/internal/config"
	"magazine_cms/internal/domain/jsonld"
	"magazine_cms/internal/domain/schema"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/repository"
	adservice "magazine_cms/internal/services/ad_service"
	analyticsservice "magazine_cms/internal/services/analytics_service"
	articleservice "magazine_cms/internal/services/article_service"
	magazineservice "magazine_cms/internal/services/magazine_service"
	registryservice "magazine_cms/internal/services/registry_service"
	tokenservice "magazine_cms/internal/services/token_service"
	userservice "magazine_cms/internal/services/user_service"
	"magazine_cms/internal/storage/postgresql"
	redisapp "magazine_cms/internal/storage/redis"
	httprouters "magazine_cms/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
	analytics  *analyticsservice.AnalyticsService
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redisapp.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := rdb.HealthCheck(ctx); err != nil {
		log.Warn("redis is not reachable yet", sl.Err(err))
	}

	catalog, err := schema.DefaultCatalog()
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool(), rdb)

	tokens := tokenservice.NewTokenService(log, repo.Token, cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	users := userservice.NewUserService(log, repo.User, tokens)
	registry := registryservice.NewRegistryService(log, catalog, repo.BlockType)
	blocks := magazineservice.NewBlockEditor(log, repo.Block, registry)
	site := jsonld.Site{
		BaseURL:          cfg.Site.BaseURL,
		OrganizationName: cfg.Site.OrganizationName,
		OrganizationLogo: cfg.Site.OrganizationLogo,
	}
	analytics := analyticsservice.NewAnalyticsService(log, repo.Analytics, cfg.Analytics.CacheTTL, cfg.Analytics.WriteTimeout)

	routers := httprouters.NewRouter(log, httprouters.Services{
		User:      users,
		Auth:      tokens,
		Registry:  registry,
		Magazine:  magazineservice.NewMagazineService(log, repo.Magazine, blocks, site),
		ChildPage: magazineservice.NewChildPageService(log, repo.ChildPage, repo.Magazine, blocks),
		Ad:        adservice.NewAdService(log, repo.Ad),
		Article:   articleservice.NewArticleService(log, repo.Article),
		Analytics: analytics,
		Health: map[string]httprouters.HealthChecker{
			"postgres": storage,
			"redis":    rdb,
		},
	})

	server := httpapp.New(log, httpapp.Options{
		Host:            cfg.HTTP.Host,
		Port:            cfg.HTTP.Port,
		Secret:          cfg.Auth.Secret,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, routers)
	server.BuildRouters()

	return &App{
		log:        log,
		HTTPServer: server,
		storage:    storage,
		redis:      rdb,
		analytics:  analytics,
	}, nil
}

// Stop shuts the server down, lets pending analytics writes finish and
// closes the stores.
func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("http server stop", sl.Err(err))
	}

	a.analytics.Wait()

	if err := a.redis.Close(); err != nil {
		a.log.Error("redis close", sl.Err(err))
	}
	a.storage.Stop()
}
