package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SmileyChris/worshipwise-sub003/internal/api/handlers"
	"github.com/SmileyChris/worshipwise-sub003/internal/api/middleware"
	"github.com/SmileyChris/worshipwise-sub003/internal/config"
	database "github.com/SmileyChris/worshipwise-sub003/internal/db"
)

type Server struct {
	cfg    *config.Config
	db     *database.Client
	router *gin.Engine
}

func New(cfg *config.Config, db *database.Client) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode) // Set to Release for production
	}

	router := gin.New()
	router.Use(middleware.SilentLogger())
	router.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		db:     db,
		router: router,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	analytics := handlers.NewAnalyticsHandler(
		s.db.DB,
		s.cfg.Engine,
		s.cfg.Hemisphere(),
		s.cfg.Server.DefaultChurchID,
	)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "worshipwise"})
	})

	// API Group. All endpoints are read-only analytics; song and
	// service CRUD (and auth) live in the planning app upstream.
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/overview", analytics.GetOverview)
		v1.GET("/recommendations", analytics.GetRecommendations)
		v1.GET("/seasonal", analytics.GetSeasonal)
		v1.GET("/compare", analytics.ComparePeriods)
		v1.GET("/health-score", analytics.GetHealthScore)

		// Set analysis takes an ordered list of song IDs
		v1.POST("/flow", analytics.AnalyzeFlow)
		v1.POST("/balance", analytics.AnalyzeBalance)
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
