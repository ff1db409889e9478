package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/config"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/draft"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/handler"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/logger"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/upstream"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/wizard"
)

type application struct {
	Logger   *zap.Logger
	Config   *config.Config
	Store    draft.Store
	Handler  *handler.Handler
	Sessions *wizard.Manager
}

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s draft_store=%s", cfg.Env, cfg.Draft.Backend)

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		sugar.Fatal(err)
	}
	defer cleanup()

	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Token, cfg.Upstream.Timeout)
	sessions := wizard.NewManager(cfg.Wizard.SessionTTL)
	wiz := wizard.New(store, upstreamClient, log, cfg.MaxAttachmentBytes())

	h := &handler.Handler{
		Logger:   log,
		Catalog:  upstreamClient,
		Wizard:   wiz,
		Sessions: sessions,
	}

	app := &application{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Handler:  h,
		Sessions: sessions,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}

func buildStore(ctx context.Context, cfg *config.Config) (draft.Store, func(), error) {
	switch cfg.Draft.Backend {
	case "redis":
		client := draft.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		store := draft.NewRedis(client, cfg.Draft.TTL)
		if err := store.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return store, func() { client.Close() }, nil
	case "postgres":
		pool, err := connectPostgres(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		store := draft.NewPostgres(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		return draft.NewMemory(), func() {}, nil
	}
}

func connectPostgres(ctx context.Context, dsn string, maxConns int) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pcfg.MaxConns = int32(maxConns)
	pcfg.MaxConnLifetime = time.Hour
	return pgxpool.NewWithConfig(ctx, pcfg)
}
