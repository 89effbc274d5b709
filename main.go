package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/prepfox/catalog-service/controllers"
	"github.com/prepfox/catalog-service/database"
	"github.com/prepfox/catalog-service/events"
	"github.com/prepfox/catalog-service/logger"
	"github.com/prepfox/catalog-service/middleware"
	"github.com/prepfox/catalog-service/repository"
	"github.com/prepfox/catalog-service/routes"
	"github.com/prepfox/catalog-service/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.Initialize(cfg.Env)
	defer log.Sync()

	// --- 1. Initialization ---

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}

	var publisher events.Publisher
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		publisher = producer
	} else {
		zap.L().Warn("KAFKA_BROKERS not set, storefront events disabled")
	}

	// --- 2. Dependency Injection (Wiring the layers together) ---

	productRepo := repository.NewProductRepository(database.DB)
	if err := productRepo.EnsureIndexes(context.Background()); err != nil {
		zap.L().Warn("Failed to ensure product indexes", zap.Error(err))
	}
	categoryRepo := repository.NewCategoryRepository(database.DB)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)

	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo, publisher)
	categoryService := services.NewCategoryService(categoryRepo)
	cartService := services.NewCartService(cartRepo, publisher)

	productController := controllers.NewProductController(catalogService, productService, redisClient, cfg.BulkDir)
	categoryController := controllers.NewCategoryController(categoryService, catalogService)
	cartController := controllers.NewCartController(cartService)

	// Background worker for queued CSV imports
	workerCtx, workerCancel := context.WithCancel(context.Background())
	services.StartBulkImportWorker(workerCtx, redisClient, productService, cfg.BulkDir)

	// --- 3. HTTP Server & Middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery()) // Recover from panics
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Default())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- 4. Route Registration ---

	routes.RegisterRoutes(r, productController, categoryController, cartController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Catalog Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for an interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Catalog Service...")

	workerCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if producer != nil {
		producer.Close()
	}
	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		zap.L().Error("Failed to disconnect MongoDB", zap.Error(err))
	}

	zap.L().Info("Catalog Service stopped gracefully")
}
