package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"stock-advisor/internal/config"
	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/logger"
)

// Server is the HTTP layer over the advisor: symbol search, price history
// and full analysis behind a gin router.
type Server struct {
	cfg      *config.Config
	advisor  interfaces.Advisor
	market   interfaces.MarketData
	searcher interfaces.SymbolSearcher
	http     *http.Server
}

// New builds the server and its routes. searcher may be nil when symbol
// search is not configured; the stocks endpoint reports that state.
func New(cfg *config.Config, advisor interfaces.Advisor, market interfaces.MarketData, searcher interfaces.SymbolSearcher) *Server {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		advisor:  advisor,
		market:   market,
		searcher: searcher,
	}

	router := gin.New()
	router.Use(RequestLogger(), Recovery())
	if cfg.Server.CORSEnabled {
		router.Use(CORS())
	}
	s.registerRoutes(router)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/stocks", s.handleStocks)
		api.GET("/history", s.handleHistory)
		api.POST("/analyze", s.handleAnalyze)
	}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	logger.Info(context.Background(), "Starting HTTP server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info(ctx, "Shutting down HTTP server")
	return s.http.Shutdown(ctx)
}
