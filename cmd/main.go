package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"starburger/internal/caching"
	"starburger/internal/geocoder"
	"starburger/internal/handlers"
	"starburger/internal/jobs/background"
	"starburger/internal/middleware"
	"starburger/internal/models"
	"starburger/internal/repositories"
	"starburger/internal/services"
	"starburger/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), services.ProductImageBucket); err != nil {
		log.Printf("WARNING: Failed to ensure image bucket exists: %v", err)
	}

	// Geocoder configuration
	geocoderBaseURL := os.Getenv("GEOCODER_BASE_URL")
	if geocoderBaseURL == "" {
		geocoderBaseURL = "https://geocode-maps.yandex.ru/1.x"
	}
	geocoderAPIKey := os.Getenv("GEOCODER_API_KEY")
	if geocoderAPIKey == "" {
		log.Printf("WARNING: GEOCODER_API_KEY is not set, distance ranking will fail")
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	restaurantRepo := repositories.NewRestaurantRepo(pool)
	menuRepo := repositories.NewMenuItemRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	placeRepo := repositories.NewPlaceRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	geocodeClient := geocoder.NewClient(geocoderBaseURL, geocoderAPIKey)
	locatorSvc := services.NewLocatorService(placeRepo, cacheSvc, geocodeClient)
	productSvc := services.NewProductService(productRepo, minioSvc, cacheSvc)
	orderSvc := services.NewOrderService(orderRepo, productRepo, restaurantRepo)
	dispatchSvc := services.NewDispatchService(orderRepo, restaurantRepo, menuRepo, locatorSvc)
	authSvc := services.NewAuthService(userRepo, jwtSecret)

	// Create handlers
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)
	authHandlers := handlers.NewAuthHandlers(authSvc)
	publicHandlers := handlers.NewPublicHandlers(productSvc, orderSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, dispatchSvc)
	restaurantHandlers := handlers.NewRestaurantHandlers(restaurantRepo, menuRepo, productRepo)
	productHandlers := handlers.NewProductHandlers(productSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(restaurantRepo, locatorSvc, cacheSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Public routes
	v1.GET("/banners", publicHandlers.ListBanners)
	v1.GET("/products", publicHandlers.ListMenu)
	v1.POST("/orders", publicHandlers.RegisterOrder)
	v1.POST("/auth/login", authHandlers.Login)

	// Staff routes (require JWT and role)
	jwtConfig := echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(middleware.JWTCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}

	staff := v1.Group("")
	staff.Use(echojwt.WithConfig(jwtConfig))
	staff.Use(middleware.AttachClaims())
	staff.Use(middleware.RequireRole(models.RoleManager))

	staff.GET("/dispatch/orders", orderHandlers.ListDispatchOrders)
	staff.GET("/orders/:id", orderHandlers.GetOrder)
	staff.PUT("/orders/:id/status", orderHandlers.UpdateStatus)
	staff.PUT("/orders/:id/called", orderHandlers.MarkCalled)
	staff.PUT("/orders/:id/restaurant", orderHandlers.AssignRestaurant)

	staff.GET("/restaurants", restaurantHandlers.ListRestaurants)
	staff.POST("/restaurants", restaurantHandlers.CreateRestaurant)
	staff.PUT("/restaurants/:id", restaurantHandlers.UpdateRestaurant)
	staff.PUT("/restaurants/:id/menu", restaurantHandlers.UpdateMenu)
	staff.GET("/products/availability", restaurantHandlers.ProductAvailability)

	// Admin routes
	admin := v1.Group("")
	admin.Use(echojwt.WithConfig(jwtConfig))
	admin.Use(middleware.AttachClaims())
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("/products/all", productHandlers.ListProducts)
	admin.POST("/products", productHandlers.CreateProduct)
	admin.PUT("/products/:id", productHandlers.UpdateProduct)
	admin.DELETE("/products/:id", productHandlers.DeleteProduct)
	admin.POST("/products/:id/image", productHandlers.UploadImage)
	admin.POST("/users", authHandlers.CreateUser)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Star Burger server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
