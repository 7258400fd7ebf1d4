package main

import (
	"log"
	"time"

	"github.com/dw4085/live-polling-app/internal/config"
	"github.com/dw4085/live-polling-app/internal/database"
	"github.com/dw4085/live-polling-app/internal/handlers"
	"github.com/dw4085/live-polling-app/internal/middleware"
	"github.com/dw4085/live-polling-app/internal/services"
	"github.com/dw4085/live-polling-app/internal/ws"

	_ "github.com/dw4085/live-polling-app/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Live Polling API
// @version         1.0
// @description     API for real-time classroom polling with live results and cross-tabulation
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	database.Bootstrap(db, cfg)

	hub := ws.NewHub()

	activeWindow := time.Duration(cfg.ActiveWindowMinutes) * time.Minute

	authService := services.NewAuthService(db, cfg.JWTSecret)
	adminService := services.NewAdminService(db)
	resultsService := services.NewResultsService(db)
	pollService := services.NewPollService(db, resultsService)
	questionService := services.NewQuestionService(db)
	sessionService := services.NewSessionService(db, activeWindow)
	responseService := services.NewResponseService(db, sessionService)

	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)
	pollHandler := handlers.NewPollHandler(pollService, hub)
	questionHandler := handlers.NewQuestionHandler(questionService, hub)
	sessionHandler := handlers.NewSessionHandler(pollService, sessionService, hub)
	responseHandler := handlers.NewResponseHandler(responseService, sessionService, hub)
	resultsHandler := handlers.NewResultsHandler(resultsService, sessionService)
	exportHandler := handlers.NewExportHandler(pollService, resultsService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/poll/:id", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", middleware.JWTAuth(authService), authHandler.Verify)
		}

		admins := api.Group("/admins")
		admins.Use(middleware.JWTAuth(authService), middleware.SuperadminOnly())
		{
			admins.GET("", adminHandler.ListAdmins)
			admins.POST("/:id/approve", adminHandler.Approve)
			admins.POST("/:id/reject", adminHandler.Reject)
		}

		polls := api.Group("/polls")
		polls.Use(middleware.JWTAuth(authService))
		{
			polls.GET("", pollHandler.ListPolls)
			polls.POST("", pollHandler.CreatePoll)
			polls.GET("/:id", pollHandler.GetPoll)
			polls.PUT("/:id", pollHandler.UpdatePoll)
			polls.DELETE("/:id", pollHandler.DeletePoll)
			polls.POST("/:id/open", pollHandler.Open)
			polls.POST("/:id/close", pollHandler.Close)
			polls.POST("/:id/archive", pollHandler.Archive)
			polls.POST("/:id/reveal", pollHandler.Reveal)
			polls.POST("/:id/reset", pollHandler.Reset)
			polls.GET("/:id/snapshots", pollHandler.ListSnapshots)
			polls.GET("/:id/export", exportHandler.Export)
			polls.POST("/:id/questions", questionHandler.CreateQuestion)
			polls.PUT("/:id/reorder", questionHandler.Reorder)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
			questions.POST("/:id/visibility", questionHandler.SetVisibility)
			questions.POST("/:id/reveal", questionHandler.Reveal)
		}

		// Participant endpoints: anonymous, identified by session token.
		api.GET("/join/:code", sessionHandler.Lookup)
		api.POST("/sessions", sessionHandler.CreateSession)
		api.POST("/responses", responseHandler.Submit)

		public := api.Group("/polls")
		public.Use(middleware.OptionalAuth(authService))
		{
			public.GET("/:id/questions", questionHandler.VisibleQuestions)
			public.GET("/:id/results", resultsHandler.PollResults)
			public.GET("/:id/crosstab", resultsHandler.CrossTab)
			public.GET("/:id/active", sessionHandler.ActiveCount)
			public.GET("/:id/responses/mine", responseHandler.Mine)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
