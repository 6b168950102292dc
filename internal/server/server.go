// Package server exposes the support engine over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/chat"
	"github.com/bloomwell/bloom/internal/storage"
)

// Server wires the chat service and repositories behind a gin engine.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server

	chat         *chat.Service
	store        *storage.Store
	analyzer     *analysis.Analyzer
	topK         int
	simThreshold float64
	log          zerolog.Logger
}

// Params collects the server dependencies.
type Params struct {
	Addr                string
	Chat                *chat.Service
	Store               *storage.Store
	Analyzer            *analysis.Analyzer
	TopK                int
	SimilarityThreshold float64
	Debug               bool
	Log                 zerolog.Logger
}

// New builds the HTTP server and registers its routes.
func New(params Params) *Server {
	if !params.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		engine:       engine,
		chat:         params.Chat,
		store:        params.Store,
		analyzer:     params.Analyzer,
		topK:         params.TopK,
		simThreshold: params.SimilarityThreshold,
		log:          params.Log,
	}
	s.routes()

	s.httpServer = &http.Server{
		Addr:         params.Addr,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/chat/messages", s.handleSendMessage)
	api.GET("/chat/history", s.handleHistory)
	api.POST("/chat/clear", s.handleClear)
	api.POST("/chat/end", s.handleEndSession)
	api.POST("/checkin", s.handleCheckIn)
	api.GET("/achievements", s.handleAchievements)
	api.GET("/insights/similar", s.handleSimilarMoments)
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
