package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/AdityaSohal/QuickAI/api"
	"github.com/AdityaSohal/QuickAI/config"
	"github.com/AdityaSohal/QuickAI/database"
	"github.com/AdityaSohal/QuickAI/identity"
	"github.com/AdityaSohal/QuickAI/middleware"
	"github.com/AdityaSohal/QuickAI/models"
	"github.com/AdityaSohal/QuickAI/providers"
	"github.com/AdityaSohal/QuickAI/repository"
	"github.com/AdityaSohal/QuickAI/services"
	"github.com/AdityaSohal/QuickAI/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Uploaded files are staged here for the duration of one request.
	if err := os.MkdirAll(config.AppConfig.Uploads.Dir, 0755); err != nil {
		log.Fatalf("FATAL: [Main] Failed to create uploads directory: %v", err)
	}

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	runMigrations(db)

	// Identity provider: local token verification plus the user API for
	// profiles and the free_usage counter.
	verifier := identity.NewTokenVerifier(config.AppConfig.Identity.JWTSecret)
	identityClient := identity.NewClient(config.AppConfig.Identity.APIBase, config.AppConfig.Identity.APIKey)

	// Provider adapters
	textGen := providers.NewTextGenerator(
		config.AppConfig.LLM.APIKey,
		config.AppConfig.LLM.BaseURL,
		config.AppConfig.LLM.Model,
	)
	imageGen := providers.NewImageGenerator(
		config.AppConfig.ImageAPI.Endpoint,
		config.AppConfig.ImageAPI.APIKey,
	)
	imageStore := providers.NewImageStore(
		config.AppConfig.Storage.CloudName,
		config.AppConfig.Storage.APIKey,
		config.AppConfig.Storage.APISecret,
	)
	resumeParser := providers.NewResumeParser()
	log.Println("INFO: [Main] Provider adapters initialized.")

	// Repositories
	creationRepo := repository.NewCreationRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Services
	quotaService := services.NewQuotaService(identityClient, config.AppConfig.FreeUsageQuota)
	genService := services.NewGenerationService(textGen, imageGen, imageStore, resumeParser, creationRepo, quotaService)
	communityService := services.NewCommunityService(communityRepo, imageStore, identityClient)
	log.Println("INFO: [Main] Services initialized.")

	apiHandler := api.NewAPIHandler(genService, communityService, quotaService, creationRepo, identityClient)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.MaxMultipartMemory = config.AppConfig.Uploads.MaxImageSize

	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler, verifier, identityClient)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + config.AppConfig.Server.Port
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Creation{},
		&models.CommunityPost{},
		&models.CommunityLike{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler, verifier identity.TokenVerifier, identityClient identity.Client) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is live!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "OK",
			"timestamp":  utils.FormatTime(time.Now()),
			"llm":        boolToConfigured(config.AppConfig.LLM.APIKey != ""),
			"image_api":  boolToConfigured(config.AppConfig.ImageAPI.APIKey != ""),
			"cloudinary": boolToConfigured(config.AppConfig.Storage.CloudName != ""),
		})
	})

	// Everything under /api requires a valid bearer token.
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.RequireAuth(verifier, identityClient))
	{
		aiGroup := apiGroup.Group("/ai")
		{
			aiGroup.POST("/write-article", handler.WriteArticleHandler)
			aiGroup.POST("/blog-titles", handler.BlogTitlesHandler)
			aiGroup.POST("/generate-images", handler.GenerateImagesHandler)
			aiGroup.POST("/remove-background", handler.RemoveBackgroundHandler)
			aiGroup.POST("/remove-object", handler.RemoveObjectHandler)
			aiGroup.POST("/review-resume", handler.ReviewResumeHandler)
		}

		userGroup := apiGroup.Group("/user")
		{
			userGroup.GET("/get-user-creations", handler.GetUserCreationsHandler)
			userGroup.GET("/get-all-user-creations", handler.GetAllUserCreationsHandler)
			userGroup.GET("/get-published-creations", handler.GetPublishedCreationsHandler)
			userGroup.POST("/toggle-like-creations", handler.ToggleLikeCreationsHandler)
		}

		communityGroup := apiGroup.Group("/community")
		{
			communityGroup.POST("/post-image", handler.PostImageHandler)
			communityGroup.GET("/posts", handler.GetCommunityPostsHandler)
			communityGroup.POST("/toggle-like", handler.ToggleCommunityLikeHandler)
		}
	}
}

func boolToConfigured(configured bool) string {
	if configured {
		return "configured"
	}
	return "not configured"
}
