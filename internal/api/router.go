package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/amber/internal/api/handlers"
	"github.com/your-org/amber/internal/api/ws"
	"github.com/your-org/amber/internal/auth"
	"github.com/your-org/amber/internal/notify"
	"github.com/your-org/amber/internal/queue"
	"github.com/your-org/amber/internal/storage"
)

type RouterConfig struct {
	APIKey     string
	DB         *storage.PostgresStore
	Photos     *storage.PhotoStore
	Consumer   *queue.Consumer
	Dispatcher *notify.Dispatcher
	Hub        *ws.Hub
	// FetchInterval is the registry rate-limit window, used to derive the
	// next-fetch countdown in statistics.
	FetchInterval time.Duration
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.Photos, cfg.Consumer)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.RequireAPIKey(cfg.APIKey))

	// WebSocket
	v1.GET("/ws", cfg.Hub.HandleWS)

	// Devices
	deviceH := handlers.NewDeviceHandler(cfg.DB)
	v1.POST("/devices", deviceH.Register)
	v1.GET("/devices", deviceH.ListActive)
	v1.GET("/devices/test", deviceH.ListTest)
	v1.DELETE("/devices/:token", deviceH.Deactivate)

	// Missing persons
	personH := handlers.NewPersonHandler(cfg.DB, cfg.Photos)
	v1.GET("/persons", personH.List)
	v1.GET("/persons/:id", personH.Get)
	v1.POST("/persons/:id/resolve", personH.Resolve)
	v1.GET("/persons/:id/photo", personH.Photo)

	// Sightings
	sightingH := handlers.NewSightingHandler(cfg.DB, cfg.Hub)
	v1.POST("/sightings", sightingH.Create)

	// Manual notifications
	notifH := handlers.NewNotificationHandler(cfg.DB, cfg.Dispatcher, cfg.Hub)
	v1.POST("/notifications", notifH.Send)

	// Statistics
	statsH := handlers.NewStatisticsHandler(cfg.DB, cfg.FetchInterval)
	v1.GET("/statistics", statsH.Get)

	return r
}
