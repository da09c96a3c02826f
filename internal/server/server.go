package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"revcast/internal/ai/component"
	"revcast/internal/config"
	"revcast/internal/handler"
	courseHandler "revcast/internal/handler/course"
	"revcast/internal/pkg/cache"
	"revcast/internal/pkg/coursetools"
	"revcast/internal/pkg/coursetools/providers"
	"revcast/internal/pkg/mongodb"
	"revcast/internal/pkg/storage"
	"revcast/internal/pkg/storagefactory"
	"revcast/internal/pkg/tts"
	"revcast/internal/server/middleware"
	coursesvc "revcast/internal/service/course"
)

// Server is the HTTP server.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New creates a server instance and wires the pipeline.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	if err := srv.setupRoutes(); err != nil {
		return nil, err
	}

	return srv, nil
}

// setupRoutes registers middleware and the API surface.
func (s *Server) setupRoutes() error {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")

	if s.mongo == nil {
		log.Warn().Msg("MongoDB not configured, course endpoints disabled")
		return nil
	}
	if s.cfg.AI.APIKey == "" {
		log.Warn().Msg("AI provider not configured, course endpoints disabled")
		return nil
	}

	chatModel, err := component.NewChatModel(context.Background(), &s.cfg.AI)
	if err != nil {
		return err
	}
	llm := providers.NewEinoProvider(chatModel)

	var ttsProvider coursetools.TTSProvider
	if s.cfg.TTS.AccessToken != "" {
		ttsClient, err := tts.NewClient(&s.cfg.TTS)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize TTS client, audio generation disabled")
		} else {
			ttsProvider = providers.NewVolcTTSProvider(ttsClient)
		}
	}

	var store storage.Storage
	if s.cfg.Storage.Type != "" {
		st, err := storagefactory.NewStorage(context.Background(), &s.cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize storage, audio generation disabled")
		} else {
			store = st
			log.Info().Str("type", st.GetStorageType()).Msg("initialized storage")
		}
	}

	svc, err := coursesvc.NewCourseService(s.mongo.Database(), s.redis, store, llm, ttsProvider, s.cfg)
	if err != nil {
		return err
	}
	hdl := courseHandler.NewHandler(svc)

	v1.POST("/chapters", hdl.CreateChapter)
	v1.GET("/chapters", hdl.ListChapters)
	v1.GET("/chapters/:id", hdl.GetChapter)
	v1.POST("/chapters/:id/concepts", hdl.ExtractConcepts)
	v1.GET("/chapters/:id/concepts", hdl.GetConcepts)
	v1.POST("/chapters/:id/plan", hdl.PlanEpisodes)
	v1.GET("/chapters/:id/plan", hdl.GetPlan)
	v1.POST("/chapters/:id/content", hdl.GenerateChapterContent)
	v1.GET("/chapters/:id/episodes", hdl.ListEpisodes)

	v1.POST("/plans/:id/approve", hdl.ApprovePlan)

	v1.GET("/episodes/:id", hdl.GetEpisode)
	v1.POST("/episodes/:id/content", hdl.GenerateEpisodeContent)
	v1.POST("/episodes/:id/content/approve", hdl.ApproveContent)
	v1.GET("/episodes/:id/script", hdl.GetScript)
	v1.GET("/episodes/:id/mcqs", hdl.GetMCQSet)
	v1.POST("/episodes/:id/audio", hdl.GenerateAudio)
	v1.GET("/episodes/:id/audio", hdl.GetAudio)
	v1.POST("/episodes/:id/approve", hdl.ApproveEpisode)
	v1.POST("/episodes/:id/revision", hdl.RequestRevision)
	v1.GET("/episodes/:id/error-report", hdl.GetErrorReport)

	return nil
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the Gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
