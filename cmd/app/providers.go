package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/skinfit/internal/domain/advisor"
	"github.com/yanqian/skinfit/internal/domain/catalog"
	"github.com/yanqian/skinfit/internal/domain/dashboard"
	"github.com/yanqian/skinfit/internal/domain/profile"
	"github.com/yanqian/skinfit/internal/domain/recommend"
	"github.com/yanqian/skinfit/internal/infra/catalogsource"
	"github.com/yanqian/skinfit/internal/infra/config"
	"github.com/yanqian/skinfit/internal/infra/profilerepo"
	"github.com/yanqian/skinfit/internal/infra/tally"
)

func provideCatalogSource(cfg *config.Config, logger *slog.Logger) catalog.Source {
	store := cfg.Catalog.ObjectStore
	if store.Enabled {
		src, err := catalogsource.NewObjectSource(catalogsource.ObjectOptions{
			Endpoint:        store.Endpoint,
			AccessKeyID:     store.AccessKeyID,
			SecretAccessKey: store.SecretAccessKey,
			Bucket:          store.Bucket,
			Key:             store.Key,
			Region:          store.Region,
			UseSSL:          store.UseSSL,
		}, logger)
		if err == nil {
			return src
		}
		logger.Error("invalid object store configuration, falling back to catalog file", "error", err, "path", cfg.Catalog.Path)
	}
	return catalogsource.NewFileSource(cfg.Catalog.Path)
}

func provideCatalog(src catalog.Source, logger *slog.Logger) *catalog.Catalog {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return catalog.Load(ctx, src, logger)
}

func provideRecommendConfig(cfg *config.Config) recommend.Config {
	rc := cfg.Recommend
	return recommend.Config{
		DefaultLimit:              rc.DefaultLimit,
		StepLimit:                 rc.StepLimit,
		FallbackLimit:             rc.FallbackLimit,
		MaxTitleLength:            rc.MaxTitleLength,
		RateSourceToIntermediate:  decimal.NewFromFloat(rc.RateSourceToIntermediate),
		RateIntermediateToDisplay: decimal.NewFromFloat(rc.RateIntermediateToDisplay),
		ImageURLTemplate:          rc.ImageURLTemplate,
		PlaceholderImageURL:       rc.PlaceholderImageURL,
		NoImageURL:                rc.NoImageURL,
	}
}

func provideEngine(cat *catalog.Catalog, cfg recommend.Config, logger *slog.Logger) *recommend.Engine {
	return recommend.NewEngine(cat, cfg, logger)
}

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		MinAge:   cfg.Profile.MinAge,
		MaxAge:   cfg.Profile.MaxAge,
		MaxLimit: cfg.Recommend.MaxLimit,
	}
}

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{
		PriceBins:  cfg.Dashboard.PriceBins,
		TopBrands:  cfg.Dashboard.TopBrands,
		TopQueries: cfg.Dashboard.TopQueries,
	}
}

func provideProfileRepository(cfg *config.Config, logger *slog.Logger) (profile.Repository, func()) {
	fallback := profilerepo.NewMemoryRepository()
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory profile repository")
		return fallback, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory profile repository", "error", err)
		return fallback, noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory profile repository", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory profile repository", "error", err)
		pool.Close()
		return fallback, noop
	}

	db := stdlib.OpenDBFromPool(pool)
	repo := profilerepo.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("profile schema setup failed, using memory profile repository", "error", err)
		_ = db.Close()
		pool.Close()
		return fallback, noop
	}
	logger.Info("postgres profile repository enabled")
	return repo, func() {
		_ = db.Close()
		pool.Close()
	}
}

func provideTally(cfg *config.Config, logger *slog.Logger) (profile.Tally, func()) {
	noop := func() {}
	if !cfg.Valkey.Enabled {
		return tally.NewMemoryTally(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory tally", "error", err)
		return tally.NewMemoryTally(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory tally", "error", err)
		return tally.NewMemoryTally(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory tally", "error", err)
		client.Close()
		return tally.NewMemoryTally(), noop
	}
	logger.Info("valkey tally enabled", "addr", cfg.Valkey.Addr)
	return tally.NewValkeyTally(client, cfg.Valkey.KeyPrefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}, nil
}
