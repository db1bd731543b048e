package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"purpose-finder/internal/assessment"
	"purpose-finder/internal/config"
	"purpose-finder/internal/db"
	apihttp "purpose-finder/internal/http"
	"purpose-finder/internal/llm"
	"purpose-finder/internal/repository"
	"purpose-finder/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL not configured")
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	resultRepo := repository.NewPgResultRepository(pool)

	// Sin credencial el colaborador queda deshabilitado desde el arranque:
	// toda evaluación usa el generador fallback.
	var llmClient llm.LLMClient = llm.NewDisabledClient("llm api key not configured")
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMMaxTokens, cfg.LLMTemperature, logger)
	} else {
		logger.Warn("llm api key not configured, using fallback generator")
	}

	selector, err := assessment.NewSelector(cfg.RecommendPolicy)
	if err != nil {
		logger.Fatal("recommend policy", zap.Error(err))
	}

	purposeSvc := service.NewPurposeService(llmClient, selector, resultRepo, logger)

	var limiter service.SubmitRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisSubmitRateLimiter(redisClient, 10*time.Minute, 20)
		}
		cancel()
	}

	if cfg.ShareTokenSecret == "" {
		logger.Warn("share token secret not configured")
	}
	shareTokens := service.NewShareTokenService(cfg.ShareTokenSecret, time.Duration(cfg.ShareTokenTTLMinutes)*time.Minute)

	assessmentH := apihttp.NewAssessmentHandler(logger, purposeSvc, shareTokens, limiter)
	healthH := apihttp.NewHealthHandler(logger, pool)
	router := apihttp.NewRouter(logger, assessmentH, healthH)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("policy", cfg.RecommendPolicy))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
