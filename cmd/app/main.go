package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fitladder-backend/docs"
	"fitladder-backend/internal/common/config"
	"fitladder-backend/internal/common/logger"
	"fitladder-backend/internal/common/middleware"
	ladderhttp "fitladder-backend/internal/features/ladder/delivery/http"
	ladderredis "fitladder-backend/internal/features/ladder/repository/redis"
	ladderservice "fitladder-backend/internal/features/ladder/service"
	profilehttp "fitladder-backend/internal/features/profile/delivery/http"
	profileredis "fitladder-backend/internal/features/profile/repository/redis"
	profileservice "fitladder-backend/internal/features/profile/service"
	sealhttp "fitladder-backend/internal/features/seals/delivery/http"
	sealservice "fitladder-backend/internal/features/seals/service"
	"fitladder-backend/internal/features/score"
	verificationhttp "fitladder-backend/internal/features/verification/delivery/http"
	verificationpg "fitladder-backend/internal/features/verification/repository/postgres"
	verificationservice "fitladder-backend/internal/features/verification/service"
	"fitladder-backend/internal/platform/postgres"
	redisplatform "fitladder-backend/internal/platform/redis"
)

// @title           Fitness Ladder API
// @version         1.0
// @description     Backend for the fitness ladder: score submission, daily quotas, honor verification and seal balances.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token issued by the authentication provider

// @tag.name profile
// @tag.description User record management

// @tag.name ladder
// @tag.description Ladder score submission and daily limits

// @tag.name verification
// @tag.description Honor verification requests and reviewer actions

// @tag.name seals
// @tag.description Seal balances and verification cost quotes

func main() {
	// Инициализируем конфигурацию и логгер
	cfg := config.Load()
	logger.Init("fitladder-backend", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем базу данных
	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	if err := verificationpg.EnsureSchema(ctx, postgresClient.GetDB()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	// Инициализируем Redis
	redisClient, err := redisplatform.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Инициализируем репозитории
	userRepository := profileredis.NewUserRepository(redisClient.Client)
	stateStore := ladderredis.NewStateStore(redisClient.Client)
	requestRepository := verificationpg.NewPostgresRepository(postgresClient.GetDB())

	// Инициализируем сервисы
	profileSvc := profileservice.NewProfileService(userRepository)
	sealSvc := sealservice.NewSealService(userRepository)
	verificationSvc := verificationservice.NewVerificationService(requestRepository, profileSvc, sealSvc)
	limiter := ladderservice.NewLimiter(stateStore, cfg.Ladder.DailySubmissionLimit)
	ladderSvc := ladderservice.NewLadderService(profileSvc, limiter, score.NewCeilingPolicy(), ladderservice.NewLogNotifier())

	logger.Info().Msg("Services initialized")

	// Настраиваем Gin
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Auth(cfg.Auth.JWTSecret))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		if err := postgresClient.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	profilehttp.NewProfileHandler(profileSvc).RegisterRoutes(api)
	ladderhttp.NewLadderHandler(ladderSvc).RegisterRoutes(api)
	verificationhttp.NewVerificationHandler(verificationSvc, cfg.Auth.AdminIDs).RegisterRoutes(api)
	sealhttp.NewSealHandler(sealSvc, profileSvc).RegisterRoutes(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Bool("debug", cfg.Debug).Msg("Server started")

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}

	logger.Info().Msg("Server stopped")
}
