package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/rdogf/AppImovel/internal/controller"
	"github.com/rdogf/AppImovel/internal/middleware"
	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/pkg/config"
	"github.com/rdogf/AppImovel/pkg/cron"
	"github.com/rdogf/AppImovel/pkg/database"
	"github.com/rdogf/AppImovel/pkg/seed"
	"github.com/rdogf/AppImovel/pkg/utils/storage"
)

func setupRoutes(app *fiber.App, uploadDir string) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/login", controller.Login)

	// Public share pages
	api.Get("/imovel/:share_code", controller.GetPublicProperty)
	api.Post("/imovel/:share_code/view", controller.RecordPropertyView)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Property Routes
	properties := protected.Group("/properties")
	properties.Get("/my", controller.ListMyProperties)
	properties.Get("/inactive", middleware.RequireMaster(), controller.ListInactiveProperties)
	properties.Post("/", controller.CreateProperty)
	properties.Get("/:id", controller.GetProperty)
	properties.Put("/:id", controller.UpdateProperty)
	properties.Delete("/:id", controller.DeleteProperty)
	properties.Post("/:id/restore", controller.RestoreProperty)
	properties.Delete("/:id/permanent", controller.PermanentDeleteProperty)
	properties.Get("/:id/clone", controller.CloneProperty)

	// Photo Routes
	properties.Get("/:id/photos", middleware.CheckPropertyOwnership(), controller.ListPropertyPhotos)
	properties.Post("/:id/photos", middleware.CheckPropertyOwnership(), controller.UploadPropertyPhotos)
	properties.Put("/:id/photos/order", middleware.CheckPropertyOwnership(), controller.ReorderPhotos)
	protected.Delete("/photos/:photo_id", controller.DeletePhoto)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/stats", controller.GetDashboardStats)

	// Settings routes
	settings := api.Group("/settings", middleware.AuthMiddleware())
	settings.Get("/", controller.GetSettings)
	settings.Put("/", controller.UpdateSettings)
	settings.Post("/logo", controller.UploadLogo)

	// User management (master only)
	users := api.Group("/users", middleware.AuthMiddleware(), middleware.RequireMaster())
	users.Get("/", controller.ListUsers)
	users.Post("/", controller.CreateUser)
	users.Put("/:id", controller.UpdateUser)
	users.Put("/:id/toggle-active", controller.ToggleUserActive)

	// Uploaded photos are served straight from disk with the local driver
	app.Static("/uploads", uploadDir)
}

func main() {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.UserSettings{},
		&model.Property{},
		&model.Photo{},
		&model.PropertyView{},
		&model.PropertyStats{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	master, err := seed.SeedMasterUser(database.GetDB(), cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal("Could not seed master user:", err)
	}
	if err := seed.SeedDefaultSettings(database.GetDB(), master.ID); err != nil {
		log.Printf("Seed warning: %v", err)
	}
	if err := seed.SeedSampleProperty(database.GetDB(), master.ID); err != nil {
		log.Printf("Seed warning: %v", err)
	}

	var driver storage.Driver
	switch cfg.Storage.Driver {
	case "s3":
		driver, err = storage.NewS3Driver(context.Background(), cfg.Storage.S3Bucket, cfg.Storage.S3Region)
		if err != nil {
			log.Fatal("Could not initialize S3 storage:", err)
		}
	default:
		driver = storage.NewLocalDriver(cfg.Storage.UploadDir)
	}
	controller.InitUploadController(driver)

	cron.InitPropertyStatsCron(database.GetDB())

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, cfg.Storage.UploadDir)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
