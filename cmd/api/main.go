package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/secaware-api/internal/config"
	"github.com/yourusername/secaware-api/internal/handler"
	"github.com/yourusername/secaware-api/internal/middleware"
	pgRepo "github.com/yourusername/secaware-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/secaware-api/internal/repository/redis"
	"github.com/yourusername/secaware-api/internal/service"
	"github.com/yourusername/secaware-api/pkg/auth"
	"github.com/yourusername/secaware-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	scoreRepo := pgRepo.NewScoreRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	throttleStore, err := redisRepo.NewThrottleStore(redisClient)
	if err != nil {
		log.Printf("Failed to initialize ThrottleStore: %v", err)
		os.Exit(1)
	}

	rateWindowStore, err := redisRepo.NewRateWindowStore(redisClient)
	if err != nil {
		log.Printf("Failed to initialize RateWindowStore: %v", err)
		os.Exit(1)
	}

	sessionStore, err := redisRepo.NewSessionStore(redisClient, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)
	if err != nil {
		log.Printf("Failed to initialize SessionStore: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	loginThrottle, err := service.NewLoginThrottle(throttleStore, time.Duration(cfg.Auth.LockoutMinutes)*time.Minute)
	if err != nil {
		log.Printf("Failed to initialize LoginThrottle: %v", err)
		os.Exit(1)
	}

	resetLimiter, err := service.NewRateLimiter(
		rateWindowStore,
		time.Duration(cfg.Auth.ResetWindowSeconds)*time.Second,
		cfg.Auth.ResetMaxRequests,
	)
	if err != nil {
		log.Printf("Failed to initialize RateLimiter: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(userRepo, jwtService, loginThrottle)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	// Почта: без ключа Resend работаем в noop-режиме
	var emailService service.EmailService
	if cfg.Email.ResendAPIKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY не задан, письма сброса пароля отправляться не будут")
		emailService = &service.NoopEmailService{}
	}

	resetService, err := service.NewPasswordResetService(userRepo, cacheRepo, emailService, resetLimiter)
	if err != nil {
		log.Printf("Failed to initialize PasswordResetService: %v", err)
		os.Exit(1)
	}

	scoreService, err := service.NewScoreService(scoreRepo, cacheRepo)
	if err != nil {
		log.Printf("Failed to initialize ScoreService: %v", err)
		os.Exit(1)
	}

	quizService, err := service.NewQuizService(questionRepo, userRepo, sessionStore, scoreService)
	if err != nil {
		log.Printf("Failed to initialize QuizService: %v", err)
		os.Exit(1)
	}

	// Генератор вопросов: без ключа Gemini доступен только прием готовых черновиков
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var questionSource service.QuestionSource
	if cfg.Gemini.APIKey != "" {
		questionSource, err = service.NewGeminiQuestionSource(appCtx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("Failed to initialize GeminiQuestionSource: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("GEMINI_API_KEY не задан, генерация вопросов отключена")
	}

	ingestService, err := service.NewQuestionIngestService(questionRepo, questionSource)
	if err != nil {
		log.Printf("Failed to initialize QuestionIngestService: %v", err)
		os.Exit(1)
	}

	// Инициализируем middleware и обработчики
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	ipLimiter := middleware.NewHTTPRateLimiter(redisClient)

	authHandler := handler.NewAuthHandler(authService, resetService)
	quizHandler := handler.NewQuizHandler(quizService, scoreService)
	adminHandler := handler.NewAdminHandler(ingestService)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(ipLimiter.Limit(middleware.AuthRateLimitConfig(cfg.Auth.HTTPMaxRequests, cfg.Auth.HTTPWindowSeconds)))
		{
			strict := ipLimiter.Limit(middleware.StrictAuthRateLimitConfig(cfg.Auth.HTTPStrictMaxRequests, cfg.Auth.HTTPWindowSeconds))
			authGroup.POST("/register", strict, authHandler.Register)
			authGroup.POST("/login", strict, authHandler.Login)
			authGroup.POST("/reset-request", authHandler.ResetRequest)
			authGroup.POST("/reset-confirm", authHandler.ResetConfirm)
		}

		// Перечень отделов (публичный маршрут)
		api.GET("/departments", quizHandler.Departments)

		// Таблица лидеров (публичный маршрут)
		api.GET("/leaderboard", quizHandler.Leaderboard)

		// Пользователи
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.Me)
			users.POST("/me/department", quizHandler.SelectDepartment)
			users.GET("/me/score", quizHandler.Score)
		}

		// Прохождение квиза
		quiz := api.Group("/quiz")
		quiz.Use(authMiddleware.RequireAuth())
		{
			quiz.GET("/question", quizHandler.Question)
			quiz.POST("/answer", quizHandler.SubmitAnswer)
		}

		// Административные маршруты банка вопросов
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/questions/generate", adminHandler.GenerateQuestions)
			admin.POST("/questions", adminHandler.IngestQuestions)
			admin.GET("/leaderboard/export", quizHandler.ExportLeaderboard)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Отправляем сигнал завершения для всех горутин
	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
