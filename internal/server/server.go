package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/SriramAtmakuri/QueryCraft/internal/config"
	"github.com/SriramAtmakuri/QueryCraft/internal/database"
	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"
	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"
	"github.com/SriramAtmakuri/QueryCraft/internal/routes"
	"github.com/SriramAtmakuri/QueryCraft/internal/services"
)

// NewServer connects the backing stores, wires the dependency graph and
// returns a configured HTTP server ready to listen.
func NewServer(cfg *config.Config) *http.Server {
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		log.Println("Connected to Redis successfully")
	}

	limiter := llm.NewRateLimiter(cfg.ProviderRequestsPerMinute, cfg.ProviderRequestsPerDay)
	completer := llm.NewClient(cfg.Provider, limiter)
	log.Printf("Using LLM provider %s (model %s)", cfg.Provider.Name, cfg.Provider.Model)

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	savedQueryRepo := repositories.NewSavedQueryRepository(pool)
	connectionRepo := repositories.NewConnectionRepository(pool)
	historyRepo := repositories.NewQueryHistoryRepository(pool)
	redisRepo := repositories.NewRedisRepository(rdb)

	authService := services.NewAuthService(userRepo, redisRepo)
	queryService := services.NewQueryService(completer, historyRepo)
	schemaService := services.NewSchemaService(completer)
	savedQueryService := services.NewSavedQueryService(savedQueryRepo)
	connectionService := services.NewConnectionService(connectionRepo)

	authHandler := handlers.NewAuthHandler(authService)
	queryHandler := handlers.NewQueryHandler(queryService)
	schemaHandler := handlers.NewSchemaHandler(schemaService)
	toolsHandler := handlers.NewToolsHandler()
	shareHandler := handlers.NewShareHandler()
	savedQueryHandler := handlers.NewSavedQueryHandler(savedQueryService)
	connectionHandler := handlers.NewConnectionHandler(connectionService)

	router := gin.Default()
	router.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(router, redisRepo,
		authHandler, queryHandler, schemaHandler,
		toolsHandler, shareHandler, savedQueryHandler, connectionHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // provider calls can be slow
	}
}

// corsConfig allows the origins listed in CORS_ORIGINS (comma separated).
// Without the variable every origin is allowed, which suits local
// development with the cookie-based refresh flow.
func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AllowCredentials = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.AllowOrigins = strings.Split(origins, ",")
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}
