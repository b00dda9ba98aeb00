package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/swiftline/payments-portal/internal/config"
	"github.com/swiftline/payments-portal/internal/events"
	"github.com/swiftline/payments-portal/internal/handler"
	"github.com/swiftline/payments-portal/internal/middleware"
	"github.com/swiftline/payments-portal/internal/models"
	portalredis "github.com/swiftline/payments-portal/internal/redis"
	"github.com/swiftline/payments-portal/internal/repository"
	"github.com/swiftline/payments-portal/internal/service"
	"github.com/swiftline/payments-portal/internal/token"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("failed to ping mongodb", zap.Error(err))
	}
	db := client.Database(cfg.MongoDatabase)

	redisClient, err := portalredis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}
	txRepo := repository.NewTransactionRepository(db)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	publisher := events.NewPublisher(redisClient.Client)

	authSvc := service.NewAuthService(userRepo, issuer, cfg.BcryptCost, publisher, logger)
	txSvc := service.NewTransactionService(txRepo, publisher, logger)

	authHandler := handler.NewAuthHandler(authSvc)
	txHandler := handler.NewTransactionHandler(txSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(logger))
	router.Use(middleware.SecureHeaders())
	router.Use(cors.Default())
	router.Use(middleware.RateLimit(redisClient.Client, logger))

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/pay", middleware.Auth(issuer), txHandler.CreatePayment)

		admin := api.Group("/admin", middleware.Auth(issuer), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/transactions", txHandler.ListTransactions)
			admin.PUT("/verify/:id", txHandler.VerifyTransaction)
			admin.PUT("/submit/:id", txHandler.SubmitTransaction)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
