package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/clickfit/clickfit/internal/cache"
	"github.com/clickfit/clickfit/internal/config"
	"github.com/clickfit/clickfit/internal/http/handlers"
	"github.com/clickfit/clickfit/internal/http/middlewares"
	"github.com/clickfit/clickfit/internal/observability"
	"github.com/clickfit/clickfit/internal/repo/postgres"
	"github.com/clickfit/clickfit/internal/service"
	"github.com/clickfit/clickfit/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// maximum JSON body size on the /api surface; uploads are capped per file
// by the uploads handler instead.
const maxJSONBody = 1 << 20

type RouterDeps struct {
	Log        *slog.Logger
	Pool       *pgxpool.Pool
	Cfg        config.Config
	Prom       *observability.Prom
	Metrics    http.Handler
	Images     *storage.ImageStore
	StatsCache cache.Store
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(d.Log))
	r.Use(otelgin.Middleware("clickfit-api"))
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSAllowedOrigins))
	r.Use(middlewares.SecurityHeaders())

	if d.Prom != nil {
		r.Use(d.Prom.GinMiddleware())
	}

	// health

	ping := func() error {
		if d.Pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return d.Pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	// wire up the account service over the pool

	usersRepo := postgres.NewUsersRepo(d.Pool)

	var store service.UserStore = usersRepo

	if d.Prom != nil {
		store = postgres.WithMetrics(usersRepo, d.Prom)
	}

	usersService := service.NewUsers(store)

	usersHandler := handlers.NewUsersHandler(usersService)
	authHandler := handlers.NewAuthHandler(usersService)
	statsHandler := handlers.NewStatsHandler(usersService, d.StatsCache)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())
	api.Use(middlewares.MaxBodyBytes(maxJSONBody))

	api.POST("/users", usersHandler.CreateUser)
	api.GET("/users", usersHandler.ListUsers)
	api.GET("/users/type/:type", usersHandler.GetUsersByType)
	api.GET("/users/:id", usersHandler.GetUserByID)
	api.PUT("/users/:id", usersHandler.UpdateUser)
	api.DELETE("/users/:id", usersHandler.DeleteUser)
	api.POST("/login", authHandler.Login)
	api.GET("/stats", statsHandler.GetStats)

	// uploads and static serving

	if d.Images != nil {
		uploadsHandler := handlers.NewUploadsHandler(d.Images, d.Cfg.MaxUploadFiles, d.Cfg.MaxUploadBytes)

		r.POST("/upload", uploadsHandler.Upload)
		r.GET("/images", uploadsHandler.ListImages)
		r.Static("/upload_images", d.Images.Dir())
	}

	r.GET("/", handlers.Index)

	return r
}
