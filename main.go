package main

import (
	"context"
	"log"
	"log/slog"

	"blogicum/config"
	"blogicum/controllers"
	"blogicum/database"
	"blogicum/handlers"
	"blogicum/logs"
	"blogicum/routes"
	"blogicum/services"
	"blogicum/storage"

	"github.com/joho/godotenv"

	_ "blogicum/docs"
)

// @title Blogicum API
// @version 1.0
// @description JSON access to the Blogicum feed and the staff catalogue

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	logs.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to set up media storage:", err)
	}

	hubService := services.NewHubService()

	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	locationService := services.NewLocationService(db)
	postService := services.NewPostService(db, store)
	commentService := services.NewCommentService(db, hubService)

	r, err := routes.NewRouter(cfg, &routes.Handlers{
		Users:    userService,
		Posts:    controllers.NewPostController(postService, commentService, categoryService, locationService),
		Comments: controllers.NewCommentController(postService, commentService),
		Profiles: controllers.NewProfileController(userService, postService),
		Auth:     controllers.NewAuthController(userService, cfg),
		API:      controllers.NewAPIController(postService, categoryService, locationService),
		WS:       handlers.NewWebSocketHandler(hubService, cfg.CORSAllowedOrigins),
	})
	if err != nil {
		log.Fatal("Failed to build router:", err)
	}

	slog.Info("server starting", "port", cfg.Port, "db_driver", cfg.DBDriver, "media_backend", cfg.MediaBackend)
	slog.Info("swagger docs available", "url", "http://localhost:"+cfg.Port+"/swagger/index.html")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
