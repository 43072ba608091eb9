// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/provenance-backend/internal/config"
	"github.com/javajoker/provenance-backend/internal/database"
	"github.com/javajoker/provenance-backend/internal/handlers"
	"github.com/javajoker/provenance-backend/internal/metrics"
	"github.com/javajoker/provenance-backend/internal/middleware"
	"github.com/javajoker/provenance-backend/internal/services"
	"github.com/javajoker/provenance-backend/internal/utils"
)

const Version = "1.0.0"

func Initialize(cfg *config.Config, store database.RecordStore) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg, store)
	if err != nil {
		return nil, err
	}
	productService := services.NewProductService(store, services.NewStubRegistry())
	stockService := services.NewStockService(store)
	purchaseService := services.NewPurchaseService(store, storageService)
	reportService := services.NewReportService(store)

	// Initialize handlers
	verificationHandler := handlers.NewVerificationHandler(productService)
	stockHandler := handlers.NewStockHandler(stockService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	reportHandler := handlers.NewReportHandler(reportService)

	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// Initialize Gin router
	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.MaxSize

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Opt-in; stock and report intake are never limited.
	verifyLimit := middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	api := r.Group("/api")
	{
		api.GET("/verify", verifyLimit, verificationHandler.LookupProduct)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(jwtManager))
		{
			protected.POST("/verify", verifyLimit, verificationHandler.VerifyProduct)
			protected.POST("/stock", stockHandler.RecordStock)
			protected.POST("/upload-purchase",
				middleware.UploadRateLimit(cfg.RateLimit.UploadsPerMinute, cfg.RateLimit.UploadBurst),
				middleware.UploadSizeLimit("file", cfg.Upload.MaxSize),
				purchaseHandler.UploadPurchase,
			)
			protected.POST("/report", reportHandler.SubmitReport)
		}
	}

	return r, nil
}
