package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/reflect-backend/internal/config"
	"github.com/AnshRaj112/reflect-backend/internal/database"
	"github.com/AnshRaj112/reflect-backend/internal/handlers"
	"github.com/AnshRaj112/reflect-backend/internal/journal"
	"github.com/AnshRaj112/reflect-backend/internal/logger"
	"github.com/AnshRaj112/reflect-backend/internal/middleware"
	"github.com/AnshRaj112/reflect-backend/internal/routes"
	"github.com/AnshRaj112/reflect-backend/internal/services"
	"github.com/AnshRaj112/reflect-backend/internal/store"
	"github.com/AnshRaj112/reflect-backend/internal/store/memstore"
	"github.com/AnshRaj112/reflect-backend/internal/store/mongodb"
	"github.com/AnshRaj112/reflect-backend/internal/store/postgres"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()

	if err := logger.Init(logger.Config{Debug: cfg.LogDebug, Dir: cfg.LogDir, Prefix: "reflect-server"}); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if envErr != nil {
		logger.Debug("no .env file found")
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger)

	// CORS: set headers and respond to OPTIONS so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	h := &handlers.Handler{}
	if cfg.UseMemoryStorage() {
		logger.Warn("STORAGE=memory: data is lost on restart")
		mem := memstore.New()
		h.Journal = journal.New(mem.Bundle(), nil)
		h.Users = mem
		h.Sessions = memstore.NewSessions()
	} else {
		if err := database.ConnectPostgres(context.Background(), cfg.PostgresURI); err != nil {
			logger.Fatal("failed to connect to PostgreSQL", "error", err)
		}
		defer database.DisconnectPostgres()

		if err := database.ConnectRedis(context.Background(), cfg.RedisURI); err != nil {
			logger.Fatal("failed to connect to Redis", "error", err)
		}
		defer database.DisconnectRedis()

		if err := database.Connect(cfg.MongoURI); err != nil {
			logger.Fatal("failed to connect to MongoDB", "uri", database.MaskURI(cfg.MongoURI), "error", err)
		}
		defer database.Disconnect()

		docs := mongodb.New(database.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := docs.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure MongoDB indexes", "error", err)
		}
		cancel()

		rel := postgres.New(database.PostgresDB)
		st := &store.Store{Users: rel, Collections: rel, Entries: docs, Drafts: docs}
		h.Journal = journal.New(st, services.NewCacheService(database.RedisClient, cfg.CacheTTL))
		h.Users = rel
		h.Sessions = services.NewRedisSessions(database.RedisClient)
		h.Ready = database.Ready
	}

	if cfg.CloudinaryConfigured() {
		uploader, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Warn("failed to initialize Cloudinary, uploads disabled", "error", err)
		} else {
			h.Uploader = uploader
			logger.Info("Cloudinary service initialized")
		}
	} else {
		logger.Warn("Cloudinary credentials not found, uploads disabled")
	}

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production with databases: Redis-based rate limit only
	switch {
	case cfg.IsProduction():
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		logger.Info("production security enabled", "allowed_host", cfg.AllowedHost)
	case !cfg.UseMemoryStorage():
		r.Use(middleware.RedisRateLimit(database.RedisClient))
	}

	routes.SetupRoutes(r, h)
	for _, route := range routes.Paths(r) {
		logger.Debug("route registered", "route", route)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("Reflect backend running", "port", cfg.Port, "env", cfg.Environment, "storage", cfg.Storage)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
}
