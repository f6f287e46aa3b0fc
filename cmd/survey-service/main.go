package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surveysvc/internal/common/cache"
	"surveysvc/internal/common/db"
	commonmw "surveysvc/internal/common/http/middleware"
	"surveysvc/internal/common/mq"
	"surveysvc/internal/survey/controller"
	"surveysvc/internal/survey/repository"
	"surveysvc/internal/survey/service"
	"surveysvc/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultConfigPath = "configs/survey_service.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	appCfg, err := loadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config failed: %v\n", err)
		return
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	mysqlDB, err := db.NewMySQLWithConfig(&appCfg.Database)
	if err != nil {
		logger.Error(context.Background(), "init database failed", zap.Error(err))
		return
	}
	defer func() {
		_ = mysqlDB.Close()
	}()

	redisCache, err := cache.NewRedisCacheWithConfig(&appCfg.Redis)
	if err != nil {
		logger.Error(context.Background(), "init redis failed", zap.Error(err))
		return
	}
	defer func() {
		_ = redisCache.Close()
	}()

	surveyRepo := repository.NewSurveyRepository(mysqlDB, redisCache)
	problemRepo := repository.NewProblemRepository(mysqlDB)

	var eventPublisher *service.SurveyEventPublisher
	if appCfg.Events.IsEnabled() {
		producer, err := mq.NewKafkaProducer(appCfg.Kafka)
		if err != nil {
			logger.Error(context.Background(), "init kafka failed", zap.Error(err))
			return
		}
		defer func() {
			_ = producer.Close()
		}()
		eventPublisher = service.NewSurveyEventPublisher(producer, appCfg.Events.Topic)
	}

	surveyService := service.NewSurveyService(surveyRepo, eventPublisher)
	problemService := service.NewProblemService(problemRepo, surveyRepo)

	httpServer := buildHTTPServer(appCfg.Server, surveyService, problemService)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "survey http server started", zap.String("addr", appCfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(context.Background(), "http server shutdown failed", zap.Error(err))
	}
}

func buildHTTPServer(cfg ServerConfig, surveyService *service.SurveyService, problemService *service.ProblemService) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(commonmw.TraceContextMiddleware())
	router.Use(requestLogger())

	surveyController := controller.NewSurveyController(surveyService)
	problemController := controller.NewProblemController(problemService)

	surveys := router.Group("/survey")
	surveys.POST("", surveyController.Create)
	surveys.GET("", surveyController.List)
	surveys.GET("/:surveyId", surveyController.Get)
	surveys.PUT("/:surveyId", surveyController.Rename)
	surveys.DELETE("/:surveyId", surveyController.Delete)
	surveys.PUT("/:surveyId/recover", surveyController.Recover)
	surveys.GET("/:surveyId/problem", problemController.List)
	surveys.POST("/:surveyId/problem", problemController.Create)

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		logger.Info(
			c.Request.Context(),
			"request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
