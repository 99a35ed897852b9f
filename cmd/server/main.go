package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialmedia/backend/internal/auth"
	"socialmedia/backend/internal/config"
	"socialmedia/backend/internal/database"
	"socialmedia/backend/internal/handler"
	"socialmedia/backend/internal/hub"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"
	"socialmedia/backend/internal/service"
	"socialmedia/backend/internal/storage"
	"socialmedia/backend/pkg/jwt"
	"socialmedia/backend/pkg/logger"
	"socialmedia/backend/pkg/monitoring"
	"socialmedia/backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "socialmedia/backend/docs" // Registers the API description with swag

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Social Media API
// @version         1.0
// @description     REST API for users, posts, direct messages and subscriptions.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatal("failed to init storage", zap.Error(err))
	}
	if minioStore, ok := store.(*storage.MinioProvider); ok {
		if err := minioStore.EnsureBucket(context.Background()); err != nil {
			log.Fatal("failed to prepare bucket", zap.Error(err))
		}
	}

	tokens := jwt.NewMaker(cfg.JWTSecret, cfg.JWTTTL())
	events := hub.NewHub()

	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	postRepo := repository.NewPostRepository(db)
	imageRepo := repository.NewPostImageRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := service.NewAuthService(userRepo, tokens, log.Named("auth"))
	userService := service.NewUserService(userRepo, subRepo, postRepo, messageRepo, log.Named("users"))
	subService := service.NewSubscriptionService(tx, userRepo, subRepo, log.Named("subscriptions"))
	postService := service.NewPostService(tx, postRepo, imageRepo, store, log.Named("posts"))
	imageService := service.NewPostImageService(tx, postRepo, imageRepo, store, log.Named("images"))
	messageService := service.NewMessageService(userRepo, messageRepo, events, log.Named("messages"))

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	metrics := monitoring.New()
	router.Use(metrics.Middleware(), security.Secure(), security.CORS(cfg.AllowedOrigins()))
	if cfg.RateLimitPerMinute > 0 {
		router.Use(security.RateLimiter(cfg.RateLimitPerMinute))
	}

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if cfg.StorageType == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}

	handler.RegisterValidators()
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	subHandler := handler.NewSubscriptionHandler(subService)
	postHandler := handler.NewPostHandler(postService)
	imageHandler := handler.NewPostImageHandler(imageService)
	messageHandler := handler.NewMessageHandler(messageService, events)

	requireAuth := auth.AuthMiddleware(tokens, userService)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		protected := apiV1.Group("")
		protected.Use(requireAuth)
		{
			protected.GET("/welcome", userHandler.Welcome)

			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/me", userHandler.GetMe)
				userRoutes.GET("/me/friends", userHandler.GetFriends)
			}

			subRoutes := protected.Group("/subscriptions")
			{
				subRoutes.POST("/change-subscription/:username", subHandler.ChangeSubscription)
				subRoutes.POST("/accept/:username", subHandler.AcceptSubscription)
			}

			postRoutes := protected.Group("/posts")
			{
				postRoutes.GET("", postHandler.GetPosts)
				postRoutes.POST("", postHandler.CreatePost)
				postRoutes.GET("/:id", postHandler.GetPostByID)
				postRoutes.PATCH("/:id", postHandler.UpdatePost)
				postRoutes.DELETE("/:id", postHandler.DeletePost)
				postRoutes.GET("/:id/images", imageHandler.GetPostImages)
				postRoutes.POST("/:id/images/upload", imageHandler.UploadPostImage)
				postRoutes.DELETE("/:id/images/:imageId", imageHandler.DeletePostImage)
			}

			messageRoutes := protected.Group("/messages")
			{
				messageRoutes.GET("", messageHandler.GetMessages)
				messageRoutes.GET("/stream", messageHandler.StreamMessages) // Must be before /:senderUsername
				messageRoutes.GET("/:senderUsername", messageHandler.GetMessagesFromSender)
				messageRoutes.POST("/send/:recipientUsername", messageHandler.SendMessage)
			}

			// Admin routes (protected by auth and role check)
			adminRoutes := protected.Group("/admin")
			adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
			{
				adminRoutes.GET("/users", userHandler.ListUsers)
			}
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server is running", zap.String("addr", srv.Addr))
		log.Info("swagger UI is available at http://localhost:" + cfg.ServerPort + "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
