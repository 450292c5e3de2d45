package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/crewdeck/crewdeck-api/internal/config"
	"github.com/crewdeck/crewdeck-api/internal/constants"
	"github.com/crewdeck/crewdeck-api/internal/database"
	"github.com/crewdeck/crewdeck-api/internal/handlers"
	"github.com/crewdeck/crewdeck-api/internal/middleware"
	"github.com/crewdeck/crewdeck-api/internal/relay"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"github.com/crewdeck/crewdeck-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware
	store := memstore.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	scriptRepo := repository.NewScriptRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	boardService := services.NewBoardService(boardRepo, projectRepo)
	scriptService := services.NewScriptService(scriptRepo)
	chatService := services.NewChatService(chatRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	projectHandler := handlers.NewProjectHandler(projectService)
	boardHandler := handlers.NewBoardHandler(boardService)
	libraryHandler := handlers.NewLibraryHandler(libraryRepo)
	scriptHandler := handlers.NewScriptHandler(scriptService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo)
	chatHandler := handlers.NewChatHandler(chatService)

	// Initialize WebSocket relay
	chatRelay := relay.New(relay.NewRegistry(), chatService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// WebSocket endpoint
	r.GET("/ws", chatRelay.HandleWS)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id/role", middleware.RequireAdmin(), userHandler.UpdateUserRole)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)

			project := projects.Group("/:id")
			project.Use(middleware.RequireProjectAccess())
			{
				project.GET("", projectHandler.GetProject)
				project.PATCH("", projectHandler.UpdateProject)
				project.DELETE("", projectHandler.DeleteProject)
				project.POST("/members", projectHandler.AddMember)
				project.DELETE("/members/:user_id", projectHandler.RemoveMember)

				// Kanban board
				project.GET("/board", boardHandler.GetBoard)
				project.POST("/columns", boardHandler.CreateColumn)
				project.PATCH("/columns/:column_id", boardHandler.UpdateColumn)
				project.DELETE("/columns/:column_id", boardHandler.DeleteColumn)
				project.POST("/contents", boardHandler.CreateContent)

				// Library
				project.POST("/folders", libraryHandler.CreateFolder)
				project.GET("/folders", libraryHandler.ListFolders)
				project.DELETE("/folders/:folder_id", libraryHandler.DeleteFolder)
				project.POST("/files", libraryHandler.CreateFile)
				project.GET("/files", libraryHandler.ListFiles)
				project.DELETE("/files/:file_id", libraryHandler.DeleteFile)
				project.POST("/videos", libraryHandler.CreateVideo)
				project.GET("/videos", libraryHandler.ListVideos)
				project.DELETE("/videos/:video_id", libraryHandler.DeleteVideo)
				project.POST("/finals", libraryHandler.CreateFinal)
				project.GET("/finals", libraryHandler.ListFinals)
				project.DELETE("/finals/:final_id", libraryHandler.DeleteFinal)

				// Script
				project.GET("/script", scriptHandler.GetScript)
				project.PUT("/script", scriptHandler.SaveScript)
				project.POST("/script/correlations", scriptHandler.Correlate)
				project.DELETE("/script/correlations/:correlation_id", scriptHandler.RemoveCorrelation)

				// Schedule
				project.POST("/events", scheduleHandler.CreateEvent)
				project.GET("/events", scheduleHandler.ListProjectEvents)
				project.PATCH("/events/:event_id", scheduleHandler.UpdateEvent)
				project.DELETE("/events/:event_id", scheduleHandler.DeleteEvent)
			}
		}

		// Card routes addressed by content ID (protected)
		contents := api.Group("/contents/:content_id")
		contents.Use(middleware.RequireAuth(), middleware.RequireContentAccess())
		{
			contents.GET("", boardHandler.GetContent)
			contents.PATCH("", boardHandler.UpdateContent)
			contents.DELETE("", boardHandler.DeleteContent)
			contents.POST("/move", boardHandler.MoveContent)
			contents.POST("/attachments", boardHandler.AddAttachment)
			contents.GET("/attachments", boardHandler.ListAttachments)
			contents.DELETE("/attachments/:attachment_id", boardHandler.DeleteAttachment)
		}

		// Calendar across all of the user's projects
		api.GET("/events", middleware.RequireAuth(), scheduleHandler.ListMyEvents)

		// Chat routes (protected)
		channels := api.Group("/channels")
		channels.Use(middleware.RequireAuth())
		{
			channels.POST("", chatHandler.CreateChannel)
			channels.GET("", chatHandler.ListChannels)
			channels.POST("/direct", chatHandler.OpenDirectChannel)
			channels.GET("/:id", chatHandler.GetChannel)
			channels.DELETE("/:id", chatHandler.DeleteChannel)
			channels.POST("/:id/members", chatHandler.AddMember)
			channels.GET("/:id/members", chatHandler.ListMembers)
			channels.DELETE("/:id/members/:user_id", chatHandler.RemoveMember)
			channels.GET("/:id/messages", chatHandler.ListMessages)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
