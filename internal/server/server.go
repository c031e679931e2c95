package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	_ "taleweaver/docs"
	"taleweaver/internal/ai"
	"taleweaver/internal/config"
	"taleweaver/internal/handler"
	storyHandler "taleweaver/internal/handler/story"
	"taleweaver/internal/pkg/lock"
	"taleweaver/internal/pkg/mongodb"
	"taleweaver/internal/pkg/postgres"
	storyRepo "taleweaver/internal/repository/story"
	"taleweaver/internal/server/middleware"
	storyService "taleweaver/internal/service/story"
)

// shutdownTimeout 优雅关闭的最长等待时间
const shutdownTimeout = 15 * time.Second

// Server HTTP 服务器
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	store   storyRepo.Store
	ai      *ai.Client
	closers []func(ctx context.Context) error
	checks  []handler.ReadyCheck
}

// New 创建服务器实例
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
	}

	// 初始化存储
	store, err := srv.openStore(ctx)
	if err != nil {
		srv.close(context.Background())
		return nil, err
	}
	srv.store = store

	// 初始化续写锁
	locker, err := srv.openLocker()
	if err != nil {
		srv.close(context.Background())
		return nil, err
	}

	// 初始化生成网关
	aiClient, err := ai.NewClient(ctx, &cfg.AI, &cfg.Story)
	if err != nil {
		srv.close(context.Background())
		return nil, fmt.Errorf("failed to init AI client: %w", err)
	}
	srv.ai = aiClient
	log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("initialized AI client")

	svc := storyService.NewStoryService(store, aiClient, locker)
	srv.setupRoutes(storyHandler.NewHandler(svc))

	return srv, nil
}

// openStore 按 storage.driver 创建存储
func (s *Server) openStore(ctx context.Context) (storyRepo.Store, error) {
	switch s.cfg.Storage.Driver {
	case config.StorageMongo:
		client, err := mongodb.New(ctx, &s.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		log.Info().Str("database", s.cfg.Mongo.Database).Msg("connected to MongoDB")

		if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
			_ = client.Close(context.Background())
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		s.checks = append(s.checks, handler.ReadyCheck{Name: "mongo", Check: client.Ping})
		// MongoStore.Close 负责断开连接
		return storyRepo.NewMongoStore(client), nil

	case config.StoragePostgres:
		pool, err := postgres.New(ctx, &s.cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info().Msg("connected to PostgreSQL")

		if s.cfg.Postgres.MigrateOnStart {
			if err := postgres.NewMigrator(pool).Up(ctx); err != nil {
				pool.Close()
				return nil, fmt.Errorf("failed to migrate: %w", err)
			}
		}
		s.checks = append(s.checks, handler.ReadyCheck{Name: "postgres", Check: pool.Ping})
		return storyRepo.NewPostgresStore(pool), nil

	default:
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return storyRepo.NewMemoryStore(), nil
	}
}

// openLocker 按 lock.driver 创建续写锁
func (s *Server) openLocker() (lock.Locker, error) {
	if s.cfg.Lock.Driver != config.LockRedis {
		return lock.NewMemoryLocker(), nil
	}

	client, err := lock.NewRedisClient(&s.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info().Str("addr", s.cfg.Redis.Addr).Msg("connected to Redis")

	s.closers = append(s.closers, func(context.Context) error { return client.Close() })
	s.checks = append(s.checks, handler.ReadyCheck{
		Name:  "redis",
		Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	})
	return lock.NewRedisLocker(client, s.cfg.Lock.TTL), nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(storyHdl *storyHandler.Handler) {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// Prometheus 指标（/metrics），需在业务路由之前注册中间件
	ginprometheus.NewPrometheus("gin").Use(s.engine)

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.checks...)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")
	storyHdl.RegisterRoutes(api)
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// 先停止接收请求，再关闭存储和 Redis
		err := srv.Shutdown(shutdownCtx)
		s.close(shutdownCtx)
		return err
	case err := <-errCh:
		s.close(context.Background())
		return err
	}
}

// close 释放存储、AI 客户端和 Redis 连接
func (s *Server) close(ctx context.Context) {
	if s.store != nil {
		if err := s.store.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close story store")
		}
	}
	if s.ai != nil {
		if err := s.ai.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close AI client")
		}
	}
	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close connection")
		}
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
