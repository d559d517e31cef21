package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"loves-api/internal/adapter"
	"loves-api/internal/adapter/assistant"
	"loves-api/internal/cache"
	"loves-api/internal/config"
	"loves-api/internal/database"
	"loves-api/internal/domain"
	"loves-api/internal/handler"
	"loves-api/internal/logger"
	"loves-api/internal/middleware"
	"loves-api/internal/repository"
	"loves-api/internal/service"
	"loves-api/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXSQLiteDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.DB.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)
	eventRepository := repository.NewSQLXCalendarRepository(db)
	chatRepository := repository.NewSQLXChatRepository(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Optional LLM assistant; nil when no API key is configured.
	var llmAssistant domain.Assistant
	llmAssistant, err = assistant.NewOpenAIAssistant(cfg.Assistant)
	if err != nil {
		appLogger.Fatal("Failed to create assistant", zap.Error(err))
	}
	if llmAssistant != nil {
		appLogger.Info("Assistant initialized", zap.String("model", cfg.Assistant.Model))
	} else {
		appLogger.Info("Assistant disabled, static fallback content will be served")
	}

	notifier := adapter.NewLogNotifier()
	questionSet := domain.DefaultQuestionSet()

	// Initialize services
	otpService := service.NewOTPService(cacheAdapter)
	authService := service.NewAuthService(userRepository, otpService, notifier, cfg)
	personalityService := service.NewPersonalityService(quizRepository, userRepository, questionSet, cacheAdapter, cfg)
	calendarService := service.NewCalendarService(eventRepository, llmAssistant)
	chatService := service.NewChatService(chatRepository, userRepository, otpService, notifier, llmAssistant)

	// Initialize handlers
	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(authService)
	personalityHandler := handler.NewPersonalityHandler(personalityService, validator)
	calendarHandler := handler.NewCalendarHandler(calendarService, validator)
	chatHandler := handler.NewChatHandler(chatService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)
	authGroup.Post("/verify-phone", authHandler.VerifyPhone)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.Me)

	// Personality quiz routes
	personalityGroup := apiGroup.Group("/personality")
	personalityGroup.Post("/start", middleware.Protected(authService), personalityHandler.StartQuiz)
	personalityGroup.Post("/submit", middleware.Protected(authService), personalityHandler.SubmitQuiz)
	personalityGroup.Get("/history", middleware.Protected(authService), personalityHandler.History)
	personalityGroup.Post("/shared/submit", middleware.Protected(authService), personalityHandler.SubmitShared)
	personalityGroup.Get("/shared/:shareCode", personalityHandler.GetByShareCode) // Public lookup by share code

	// Calendar routes (all protected)
	calendarGroup := apiGroup.Group("/calendar", middleware.Protected(authService))
	calendarGroup.Get("/events", calendarHandler.ListEvents)
	calendarGroup.Post("/events", calendarHandler.CreateEvent)
	calendarGroup.Get("/events/upcoming", calendarHandler.UpcomingEvents)
	calendarGroup.Get("/events/export", calendarHandler.ExportICS)
	calendarGroup.Get("/events/stats", calendarHandler.Stats)
	calendarGroup.Post("/events/from-suggestion", calendarHandler.CreateFromSuggestion)
	calendarGroup.Put("/events/:id", calendarHandler.UpdateEvent)
	calendarGroup.Delete("/events/:id", calendarHandler.DeleteEvent)
	calendarGroup.Post("/events/:id/daily", calendarHandler.UpsertDailyEntry)
	calendarGroup.Get("/events/:id/daily", calendarHandler.ListDailyEntries)
	calendarGroup.Delete("/events/:id/daily/:dayKey", calendarHandler.DeleteDailyEntry)
	calendarGroup.Post("/suggestions", calendarHandler.Suggestions)

	// Chat routes (all protected)
	chatGroup := apiGroup.Group("/chats", middleware.Protected(authService))
	chatGroup.Post("/", chatHandler.CreateOrGetChat)
	chatGroup.Get("/", chatHandler.ListChats)
	chatGroup.Post("/otp/request", chatHandler.RequestOTP)
	chatGroup.Post("/otp/verify", chatHandler.VerifyOTP)
	chatGroup.Post("/assistant", chatHandler.Assistant)
	chatGroup.Get("/:id/messages", chatHandler.ListMessages)
	chatGroup.Post("/:id/messages", chatHandler.SendMessage)
	chatGroup.Post("/:id/read", chatHandler.MarkRead)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
