package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/repo"
	"tasktracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	log    *slog.Logger
	db     *repo.DB
	redis  *redis.Client
	router *gin.Engine
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := OpenDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	a.db = db

	var taskCache *cache.TaskCache
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.redis = rdb
		taskCache = cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())
		log.Info("task list cache enabled", "addr", cfg.Redis.Addr)
	}

	svc := service.NewTaskService(repo.NewSQLiteTaskRepo(db), taskCache, log)
	a.router = NewRouter(cfg, svc, log)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases the Redis client and the database, returning every failure.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("db close: %w", err))
	}
	return errors.Join(errs...)
}

// OpenDB opens the task database and makes sure the schema exists.
func OpenDB(ctx context.Context, cfg config.DBConfig, log *slog.Logger) (*repo.DB, error) {
	db, err := repo.Open(ctx, repo.Config{
		Path:        cfg.File,
		BusyTimeout: cfg.BusyTimeout.Duration(),
	}, log)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// NewRouter builds the engine with middleware and every route registered.
func NewRouter(cfg config.Config, svc *service.TaskService, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(log), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, svc, log)
	return r
}
