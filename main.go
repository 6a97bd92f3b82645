package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clothing-store/database"
	"clothing-store/handlers"
	"clothing-store/kafka"
	"clothing-store/middleware"
	"clothing-store/store"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.InitDB(logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize OpenTelemetry
	shutdownTracing, err := middleware.InitTracing("clothing-store")
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing()

	// Initialize Kafka producer; skipped when no broker is configured
	var producer sarama.SyncProducer
	if os.Getenv("KAFKA_BROKERS") != "" {
		producer, err = kafka.InitProducer(logger)
		if err != nil {
			logger.Fatal("Failed to initialize Kafka producer", zap.Error(err))
		}
		defer producer.Close()
	}

	st := store.New(db, logger)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("clothing-store"))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	// Metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	// JSON API
	userHandler := handlers.NewUserHandler(st, logger)
	productHandler := handlers.NewProductHandler(st, logger)
	orderHandler := handlers.NewOrderHandler(st, producer, logger)
	seedHandler := handlers.NewSeedHandler(st, logger)

	api := router.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/seed", seedHandler.Seed)

		api.POST("/users", userHandler.CreateUser)
		api.GET("/users", userHandler.GetUsers)
		api.GET("/users/:id", userHandler.GetUser)

		api.POST("/products", productHandler.CreateProduct)
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders", orderHandler.GetOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
	}

	// Frontend pages
	router.GET("/", handlers.IndexPage)
	router.GET("/products", handlers.ProductsPage)
	router.GET("/products/:id", handlers.ProductDetailPage)
	router.GET("/cart", handlers.CartPage)
	router.GET("/login", handlers.LoginPage)
	router.GET("/register", handlers.RegisterPage)
	router.GET("/orders", handlers.OrdersPage)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Clothing store started", zap.String("port", port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
