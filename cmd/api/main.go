package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"agentpage_backend/internal/controller"
	"agentpage_backend/internal/middleware"
	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/ai"
	"agentpage_backend/pkg/cache"
	"agentpage_backend/pkg/config"
	"agentpage_backend/pkg/cron"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/email"
	"agentpage_backend/pkg/seed"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	// Public page routes
	public := api.Group("/p")
	public.Get("/:slug", controller.GetPublicProfile)
	public.Post("/:slug/view", controller.RecordProfileView)
	public.Post("/:slug/leads", controller.CreateLead)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Profile routes
	profile := protected.Group("/profile")
	profile.Get("/", controller.GetProfile)
	profile.Post("/", controller.CreateProfile)
	profile.Patch("/", controller.UpdateProfile)
	profile.Patch("/autosave", controller.AutosaveProfileField)
	profile.Post("/avatar", controller.UploadAvatar)
	profile.Post("/cover", controller.UploadCoverPhoto)

	// Property routes
	properties := protected.Group("/properties")
	properties.Get("/", controller.ListMyProperties)
	properties.Post("/", middleware.CheckListingLimit(), controller.CreateProperty)
	properties.Post("/reorder", controller.ReorderProperties)
	properties.Patch("/:id", middleware.CheckPropertyOwnership(), controller.UpdateProperty)
	properties.Delete("/:id", middleware.CheckPropertyOwnership(), controller.DeleteProperty)
	properties.Post("/:id/duplicate", middleware.CheckPropertyOwnership(), controller.DuplicateProperty)
	properties.Post("/:id/move", middleware.CheckPropertyOwnership(), controller.MoveProperty)
	properties.Patch("/:id/autosave", middleware.CheckPropertyOwnership(), controller.AutosavePropertyField)

	// Image slot routes
	properties.Post("/:id/images", middleware.CheckPropertyOwnership(), middleware.CheckImageLimit(), controller.AddPropertyImage)
	properties.Delete("/:id/images/:index", middleware.CheckPropertyOwnership(), controller.RemovePropertyImage)
	properties.Post("/:id/images/:index/swap", middleware.CheckPropertyOwnership(), controller.SwapPropertyImage)

	// Autosave flush (editor unmount)
	protected.Post("/autosave/flush", controller.FlushAutosave)

	// AI text generation
	protected.Post("/generate-bio", controller.GenerateBio)
	protected.Post("/generate-description", controller.GenerateDescription)

	// Lead routes
	leads := protected.Group("/leads")
	leads.Get("/", controller.GetMyLeads)
	leads.Put("/:id/status", controller.UpdateLeadStatus)
	leads.Put("/:id/read", controller.MarkLeadAsRead)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/stats", controller.GetDashboardStats)
}

func main() {
	cfg := config.Load()

	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		if err := email.InitEmailService(apiKey); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, email notifications disabled")
	}

	if err := ai.Init(context.Background(), cfg.AI.APIKey); err != nil {
		log.Printf("Could not initialize AI client, text generation disabled: %v", err)
	}

	cache.Init(cfg.Redis.URL)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(dbURL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Profile{},
		&model.Property{},
		&model.Lead{},
		&model.ProfileView{},
		&model.ProfileStats{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	if os.Getenv("SEED_DEMO") == "true" {
		seed.SeedDemoProfile(database.GetDB())
	}

	if email.GlobalEmailService != nil {
		cron.InitProfileStatsCron(email.GlobalEmailService)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
