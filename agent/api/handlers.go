package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tanpawarit/consensus-solver/agent/agents/roles"
	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

func (s *Server) solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Problem description is required"})
		return
	}

	problem, err := contractx.NewProblem(*req.Description, req.Domain, req.Constraints)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.solver.Solve(c.Request.Context(), problem)
	if err != nil {
		var stageErr *contractx.StageError
		switch {
		case errors.As(err, &stageErr):
			c.JSON(http.StatusInternalServerError, NewStageFailure(stageErr))
		case errors.Is(err, contractx.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, NewSolutionBundle(res))
}

func (s *Server) listAgents(c *gin.Context) {
	out := make(map[string]string, len(s.agents))
	for _, a := range s.agents {
		out[a.Role().Key()] = roles.Label(a.Role())
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"timestamp":        s.now().UTC(),
		"agents_available": len(s.agents),
		"version":          Version,
	})
}
