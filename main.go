package main

import (
	"log"

	"lms/config"
	controllers "lms/controllers/course"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	categoryRoutes "lms/routers/categoryRoutes"
	courseRoutes "lms/routers/courseRoutes"
	reviewRoutes "lms/routers/reviewRoutes"
	statsRoutes "lms/routers/statsRoutes"
	"lms/storage"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	controllers.Init(storage.NewLocalStore(config.AppConfig.UploadDir))

	app := fiber.New(fiber.Config{
		BodyLimit: 512 * 1024 * 1024, // lesson videos
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded covers and videos
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	statsRoutes.SetupStatsRoutes(app)

	if config.AppConfig.AssetSweepEnabled {
		utils.InitializeAssetSweeper()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
