package solverapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/gin-gonic/gin"
)

const (
	defaultRunLimit = 50
	defaultTimeout  = 5 * time.Second
)

// Controller serves the solver commands.
type Controller struct {
	backend i.SolverBackend
	history i.RunHistory
	timeout time.Duration
}

// NewController initializes a Controller. A zero timeout uses the default.
func NewController(backend i.SolverBackend, history i.RunHistory, timeout time.Duration) (*Controller, error) {
	if backend == nil {
		return nil, errors.New("solver controller needs a backend")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Controller{
		backend: backend,
		history: history,
		timeout: timeout,
	}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/health", c.health)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/generate_grid", c.generateGrid)
	for _, alg := range solver.Algorithms {
		route.POST("/"+alg.Command(), c.solve(alg))
	}
	route.GET("/runs", c.runs)
}

func (c *Controller) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *Controller) generateGrid(ctx *gin.Context) {
	var request GenerateGridRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	g, err := c.backend.GenerateGrid(timeoutCtx, request.Width, request.Height)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, g)
}

func (c *Controller) solve(alg solver.Algorithm) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var request SolveRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if alg.ReportsVisited() && request.Dest == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "dest is required for " + alg.Command()})
			return
		}

		req := solver.Request{Algorithm: alg, Grid: request.Arr, Start: *request.Start}
		if alg.ReportsVisited() {
			req.Destination = *request.Dest
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		reply, err := c.backend.Solve(timeoutCtx, req)
		if err != nil {
			ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, reply)
	}
}

func (c *Controller) runs(ctx *gin.Context) {
	limit := defaultRunLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	response := []RunResponse{}
	if c.history != nil {
		runs, err := c.history.Runs(limit)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading runs"})
			return
		}
		for _, run := range runs {
			response = append(response, newRunResponse(run))
		}
	}

	ctx.JSON(http.StatusOK, response)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, solver.ErrInvalidRequest),
		errors.Is(err, solver.ErrUnknownAlgorithm),
		errors.Is(err, solver.ErrInvalidDimensions):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
