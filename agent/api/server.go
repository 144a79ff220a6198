// Package api exposes the solver over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tanpawarit/consensus-solver/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

const Version = "1.0.0"

// Solver runs one problem through the pipeline.
type Solver interface {
	Solve(ctx context.Context, problem contractx.Problem) (*orchestrator.RunResult, error)
}

type Server struct {
	solver Solver
	agents []contractx.Agent
	logger zerolog.Logger
	engine *gin.Engine
	now    func() time.Time
}

func NewServer(solver Solver, models contractx.Registry, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		solver: solver,
		agents: models.Agents(),
		logger: logger,
		engine: gin.New(),
		now:    time.Now,
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.POST("/solve", s.solve)
	s.engine.GET("/agents", s.listAgents)
	s.engine.GET("/health", s.health)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// requestLogger logs one line per request and puts the logger on the request
// context so downstream stages log with it.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Request = c.Request.WithContext(s.logger.WithContext(c.Request.Context()))

		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(started)).
			Str("client_ip", c.ClientIP()).
			Msg("request handled")
	}
}
