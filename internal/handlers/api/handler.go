package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/beertally/internal/services/messaging"
	"github.com/KirkDiggler/beertally/internal/services/tally"
)

// Config holds configuration for the HTTP API
type Config struct {
	TallyService     tally.Service
	MessagingService messaging.Service
	Logger           *zap.Logger

	// CORSOrigins lists allowed browser origins; "*" allows any
	CORSOrigins []string
}

// Handler serves the tally over JSON
type Handler struct {
	tallyService     tally.Service
	messagingService messaging.Service
	logger           *zap.Logger
	corsOrigins      []string
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.TallyService == nil {
		return nil, errors.New("tally service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Handler{
		tallyService:     cfg.TallyService,
		messagingService: cfg.MessagingService,
		logger:           cfg.Logger,
		corsOrigins:      cfg.CORSOrigins,
	}, nil
}

// Router builds a gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())
	r.Use(cors.New(h.corsConfig()))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes adds the tally routes to r
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/snapshot", h.GetSnapshot)
		api.GET("/photos", h.ListPhotos)

		api.POST("/drinks", h.LogDrink)
		api.POST("/undo", h.Undo)

		api.POST("/participants", h.AddParticipant)
		api.DELETE("/participants/:name", h.RemoveParticipant)

		api.POST("/reset", h.ResetAll)
		api.POST("/reset/daily", h.ResetDaily)
	}
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range h.corsOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}

	cfg.AllowOrigins = h.corsOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// requestLogger logs one line per request through zap
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			h.logger.Error("Request failed", fields...)
		case status >= http.StatusBadRequest:
			h.logger.Info("Request rejected", fields...)
		default:
			h.logger.Debug("Request served", fields...)
		}
	}
}
