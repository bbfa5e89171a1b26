package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"document-versioning-server/config"
	_ "document-versioning-server/docs"
	"document-versioning-server/internal/diff"
	"document-versioning-server/internal/handler"
	"document-versioning-server/internal/metrics"
	"document-versioning-server/internal/repository"
	"document-versioning-server/internal/security"
	"document-versioning-server/internal/service"
	"document-versioning-server/internal/util"

	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Document-versioning-server
// @version 1.0
// @description REST API для версий документов, сравнения и публичных ссылок

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := util.Logger()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка загрузки конфигурации")
	}
	util.InitLogger(cfg.Log.Level, cfg.Log.Pretty, os.Stdout)

	db, err := config.SetupDatabase(&cfg.DatabaseConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось подключиться к БД")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("ошибка при закрытии БД")
		}
	}()

	if cfg.DatabaseConfig.EnsureSchema {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("не удалось применить схему БД")
		}
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка подключения к Redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("ошибка при закрытии Redis")
		}
	}()

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка создания S3 сервиса")
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	docRepo := repository.NewDocumentRepository(db)
	shareRepo := repository.NewShareRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, cfg.TTL.Cache)

	engine := diff.NewEngine(diff.Options{
		MaxBytes: cfg.Engine.DiffMaxBytes,
		Context:  cfg.Engine.DiffContext,
	}, diff.NewClassifier())

	opt := service.Options{
		Timeout:       cfg.Engine.CollaboratorTimeout,
		AppendRetries: cfg.Engine.AppendRetries,
		PresignTTL:    cfg.TTL.PresignedGet,
		ShareBaseURL:  cfg.Share.BaseURL,
		MaxShareTTL:   cfg.Share.MaxTTL,
		TokenSize:     cfg.Share.TokenSize,
	}
	versionService := service.NewVersionService(docRepo, shareRepo, cacheRepo, s3Service, engine, opt)
	restoreService := service.NewRestoreService(docRepo, cacheRepo, opt)
	shareService := service.NewShareService(docRepo, shareRepo, cacheRepo, s3Service, opt)

	jwtService := security.NewJWTService(&cfg.JWT)
	limiter := security.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	versionHandler := handler.NewVersionHandler(versionService, restoreService, cfg.Engine.MaxUploadBytes, cfg.TTL.PresignedGet)
	shareHandler := handler.NewShareHandler(shareService, cfg.Share.DefaultTTL)

	srv, router := config.SetupServer(cfg.ServerAddr)
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	handler.SetupRoutes(router, versionHandler, shareHandler, security.JWTMiddleware(jwtService), limiter.Middleware)

	runServer(ctx, srv)
}

func runServer(ctx context.Context, server *http.Server) {
	log := util.Logger()

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("сервер запущен")
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ошибка работы сервера")
		}
	case sig := <-signalChannel:
		log.Info().Str("signal", sig.String()).Msg("получен сигнал остановки работы сервера")
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Error().Err(err).Msg("ошибка при остановке сервера")
	} else {
		log.Info().Msg("сервер успешно остановлен")
	}
}
