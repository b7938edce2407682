package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/meilisearch/meilisearch-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tapfolio.app/backend/internal/config"
	"tapfolio.app/backend/internal/handler"
	"tapfolio.app/backend/internal/middleware"
	"tapfolio.app/backend/internal/repository"
	"tapfolio.app/backend/internal/service"
	"tapfolio.app/backend/pkg/validator"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Server {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	widgetRepo := repository.NewWidgetSettingRepository(db)
	linkRepo := repository.NewCustomLinkRepository(db)
	socialRepo := repository.NewSocialLinkRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient, logger)

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	viewSvc := service.NewViewService(redisClient, profileRepo, logger)
	if redisClient != nil {
		go viewSvc.StartViewSyncWorker(context.Background())
	}

	cardSvc := service.NewCardService(profileRepo, searchSvc, viewSvc, redisClient, logger, cfg.RateLimitCreateCard)
	cardHandler := handler.NewCardHandler(cardSvc)

	profileSvc := service.NewProfileService(profileRepo, searchSvc, logger)
	profileHandler := handler.NewProfileHandler(profileSvc)

	widgetSvc := service.NewWidgetService(profileRepo, widgetRepo, linkRepo, socialRepo, serviceRepo)
	widgetHandler := handler.NewWidgetHandler(widgetSvc)

	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		if err := validator.RegisterCustom(v); err != nil {
			logger.Fatal("failed to register custom validators", zap.Error(err))
		}
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.Metrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/directory", cardHandler.Directory)

	// Public card pages; OptionalAuth lets owners get the edit view.
	public := api.Group("/p")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/:username", cardHandler.GetCardPage)
		public.GET("/:username/vcard", cardHandler.GetVCard)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/onboarding", cardHandler.Onboarding)

		protected.POST("/cards", cardHandler.CreateCard)
		protected.GET("/cards", cardHandler.ListCards)
		protected.DELETE("/cards/:card_id", cardHandler.DeleteCard)
		protected.PUT("/cards/:card_id/visibility", cardHandler.UpdateVisibility)
		protected.PUT("/cards/:card_id/primary", cardHandler.SetPrimary)

		protected.PUT("/cards/:card_id/profile", profileHandler.UpdateProfile)
		protected.PUT("/cards/:card_id/bio", profileHandler.UpdateBio)
		protected.PUT("/cards/:card_id/contact", profileHandler.UpdateContact)
		protected.PUT("/cards/:card_id/location", profileHandler.UpdateLocation)

		protected.PUT("/cards/:card_id/widgets/:widget_type", widgetHandler.UpsertSetting)

		protected.POST("/cards/:card_id/links", widgetHandler.CreateCustomLink)
		protected.PUT("/cards/:card_id/links/:link_id", widgetHandler.UpdateCustomLink)
		protected.DELETE("/cards/:card_id/links/:link_id", widgetHandler.DeleteCustomLink)

		protected.POST("/cards/:card_id/social", widgetHandler.CreateSocialLink)
		protected.PUT("/cards/:card_id/social/:link_id", widgetHandler.UpdateSocialLink)
		protected.DELETE("/cards/:card_id/social/:link_id", widgetHandler.DeleteSocialLink)

		protected.POST("/cards/:card_id/services", widgetHandler.CreateService)
		protected.PUT("/cards/:card_id/services/:service_id", widgetHandler.UpdateService)
		protected.DELETE("/cards/:card_id/services/:service_id", widgetHandler.DeleteService)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
