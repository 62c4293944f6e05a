package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	eventControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/events"
	"github.com/sn0wstorm20202/blinkit-clone/middleware"
	"github.com/sn0wstorm20202/blinkit-clone/models"
	"github.com/sn0wstorm20202/blinkit-clone/routes"
	"github.com/sn0wstorm20202/blinkit-clone/voice"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Info().Msg("starting application")

	// Init DB
	db := initDatabase(logger)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Product{},
		&models.Address{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.Fatal().Err(err).Msg("automigrate failed")
	}

	if os.Getenv("SEED_ON_START") == "true" {
		if err := models.SeedCatalog(db); err != nil {
			logger.Fatal().Err(err).Msg("catalog seed failed")
		}
	}

	// Gin setup
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Voice agent wiring
	completer := voice.NewOpenAICompleter(os.Getenv("OPENAI_API_KEY"), os.Getenv("VOICE_AGENT_MODEL"))
	agent := voice.NewAgent(completer, logger)
	dispatcher := voice.NewDispatcher(db, eventControllers.DefaultHub)
	limiter := voice.NewWindowLimiter(voiceRateLimit(), time.Minute, nil)

	// Setup routes
	routes.SetupRoutes(r, db, agent, dispatcher, limiter)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("server listening")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(logger zerolog.Logger) *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			logger.Fatal().Err(err).Msg("db connection failed")
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("db connection failed")
	}
	return db
}

func voiceRateLimit() int {
	if raw := os.Getenv("VOICE_AGENT_RATE_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 30
}
