package app

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mrzkhrmn/EventCampusWebAPI/api"
	"github.com/mrzkhrmn/EventCampusWebAPI/config"
	"github.com/mrzkhrmn/EventCampusWebAPI/database"
	"github.com/mrzkhrmn/EventCampusWebAPI/router"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		log.Println("Check whether Postgres is running and reachable")
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Error running migrations")
		return err
	}

	if getEnv.SEED_ON_START {
		if err := database.NewSeeder(store.DB()).SeedAll(); err != nil {
			log.Println("Warning: database seeding failed:", err)
		}
	}

	defer store.Close()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, getEnv)

	// Start the Server
	return server.Run()
}
