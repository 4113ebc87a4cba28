package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/address-extractor/app/config"
	"github.com/address-extractor/app/controllers"
	"github.com/address-extractor/app/services"
	"github.com/address-extractor/internal/gazetteer"
	"github.com/address-extractor/internal/resolver"
	"github.com/address-extractor/internal/search"
	"github.com/address-extractor/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	loadConfig()
	if err := config.Load(viper.GetString("extractor.config_path")); err != nil {
		log.Printf("Warning: Cannot read extractor config, using defaults: %v", err)
	}

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Address Extractor Service")

	// 3. Load gazetteer và build tries
	datasetDir := viper.GetString("gazetteer.dataset_dir")
	dataset, err := gazetteer.LoadDir(datasetDir)
	if err != nil {
		logger.Fatal("Failed to load gazetteer dataset", zap.Error(err))
	}

	tries, err := gazetteer.BuildAll(dataset, gazetteer.BuildOptions{
		MaxVariants:  config.C.MaxVariants,
		ASCIIAliases: config.C.ASCIIAliases,
	})
	if err != nil {
		logger.Fatal("Failed to build gazetteer tries", zap.Error(err))
	}

	logger.Info("Gazetteer tries built",
		zap.Int("provinces", tries.Provinces.Len()),
		zap.Int("districts", tries.Districts.Len()),
		zap.Int("wards", tries.Wards.Len()))

	// 4. Khởi tạo resolver
	rslv := resolver.NewResolver(tries, resolver.Options{
		FallbackDrops: config.C.FallbackDrops,
	}, logger)

	// 5. Khởi tạo Meilisearch fallback nếu bật
	var searcher *search.FallbackSearcher
	if config.C.UseMeiliFallback {
		searchConfig := search.SearchConfig{
			Host:      viper.GetString("meilisearch.url"),
			APIKey:    viper.GetString("meilisearch.master_key"),
			IndexName: "admin_units",
			Timeout:   30 * time.Second,
		}

		searcher, err = search.NewFallbackSearcher(searchConfig, logger)
		if err != nil {
			logger.Warn("Meilisearch fallback unavailable, continuing without it", zap.Error(err))
			searcher = nil
		}
	}

	// 6. Kết nối MongoDB
	mongoDB := initMongoDB(logger)
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting MongoDB", zap.Error(err))
		}
	}()

	// 7. Khởi tạo cache services (Redis L1 + MongoDB L2)
	redisURL := getEnv("REDIS_URL", "redis://localhost:6379")
	redisCache, err := services.NewRedisCacheService(redisURL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
	}

	l1Size := getEnvInt("L1_CACHE_SIZE", 10000)
	mongoCache, err := services.NewMongoCacheService(mongoDB, l1Size, logger)
	if err != nil {
		logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
	}

	cacheService := services.NewHybridCacheService(redisCache, mongoCache, logger)

	// 8. Warm up cache từ MongoDB
	if err := cacheService.WarmUpFromMongoDB(context.Background(), l1Size/2); err != nil {
		logger.Warn("Failed to warm up cache", zap.Error(err))
	}

	// 9. Khởi tạo services và controllers
	gazetteerVersion := viper.GetString("gazetteer.version")
	addressService := services.NewAddressService(rslv, tries, searcher, cacheService, gazetteerVersion, logger)

	addressController := controllers.NewAddressController(addressService, logger)
	adminController := controllers.NewAdminController(addressService, cacheService, logger)

	// 10. Khởi tạo Gin router và routes
	router := gin.New()
	routes.SetupAllRoutes(router, addressController, adminController)

	// 11. Khởi động server
	port := getEnv("APP_PORT", "8080")
	logger.Info("Address Extractor Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig load configuration từ file và env vars
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("meilisearch.url", "http://meili:7700")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/address_extractor")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("gazetteer.dataset_dir", "./dataset")
	viper.SetDefault("gazetteer.version", "1.0.0")
	viper.SetDefault("extractor.config_path", "./config/extractor.yaml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger khởi tạo structured logger
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// initMongoDB khởi tạo kết nối MongoDB
func initMongoDB(logger *zap.Logger) *mongo.Database {
	mongoURL := getEnv("MONGO_URL", "mongodb://localhost:27017/address_extractor")

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	db := client.Database("address_extractor")
	logger.Info("Connected to MongoDB", zap.String("database", "address_extractor"))

	return db
}

// getEnv lấy environment variable với default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt lấy environment variable as int với default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
