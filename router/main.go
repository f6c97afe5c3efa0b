package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/mrzkhrmn/EventCampusWebAPI/config"
	"github.com/mrzkhrmn/EventCampusWebAPI/database"
	"github.com/mrzkhrmn/EventCampusWebAPI/handlers"
	auth_handlers "github.com/mrzkhrmn/EventCampusWebAPI/handlers/auth"
	category_handlers "github.com/mrzkhrmn/EventCampusWebAPI/handlers/category"
	department_handlers "github.com/mrzkhrmn/EventCampusWebAPI/handlers/department"
	event_handlers "github.com/mrzkhrmn/EventCampusWebAPI/handlers/event"
	faculty_handlers "github.com/mrzkhrmn/EventCampusWebAPI/handlers/faculty"
	university_handlers "github.com/mrzkhrmn/EventCampusWebAPI/handlers/university"
	"github.com/mrzkhrmn/EventCampusWebAPI/services"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/auth"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/cache"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/middleware"
)

func SetupRoutes(app *fiber.App, store *database.GORMStore, getEnv *config.EnviornmentVariable) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtConfig := auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        getEnv.JWT_ISSUER,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db := store.DB()

	// Redis backs the token revocation list. Without it logout becomes a
	// client-side operation only.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		var err error
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Token revocation will be disabled.", err)
			redisCache = nil
		}
	}

	blacklistService := auth.NewBlacklistService(redisCache)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, blacklistService)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, blacklistService)
	universityHandler := university_handlers.NewUniversityHandler(db)
	facultyHandler := faculty_handlers.NewFacultyHandler(db)
	departmentHandler := department_handlers.NewDepartmentHandler(db)
	categoryHandler := category_handlers.NewCategoryHandler(db)

	eventService := services.NewEventService(db)
	eventHandler := event_handlers.NewEventHandler(eventService)

	app.Use(cors.New())

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.Profile)

	// University directory
	universities := api.Group("/universities")
	universities.Get("/", universityHandler.List)
	universities.Get("/:id", universityHandler.Get)
	universities.Get("/:id/faculties", universityHandler.Faculties)
	universities.Post("/", authMiddleware.Required(), universityHandler.Create)

	// Faculties
	faculties := api.Group("/faculties")
	faculties.Get("/:id", facultyHandler.Get)
	faculties.Get("/:id/departments", facultyHandler.Departments)
	faculties.Post("/", authMiddleware.Required(), facultyHandler.Create)

	// Departments
	departments := api.Group("/departments")
	departments.Get("/:id", departmentHandler.Get)
	departments.Post("/", authMiddleware.Required(), departmentHandler.Create)

	// Event categories
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.Get)
	categories.Post("/", authMiddleware.Required(), categoryHandler.Create)
	categories.Put("/:id", authMiddleware.Required(), categoryHandler.Update)
	categories.Delete("/:id", authMiddleware.Required(), categoryHandler.Delete)

	// Events (all protected, scoped to the caller's university)
	events := api.Group("/events", authMiddleware.Required())
	events.Get("/", eventHandler.List)
	events.Post("/", eventHandler.Create)
	events.Get("/participated", eventHandler.Participated)
	events.Get("/:id", eventHandler.Get)
	events.Post("/:id/join", eventHandler.Join)
	events.Delete("/:id/leave", eventHandler.Leave)
}
