package solverclient

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/pathviz/api"
	apii "github.com/beka-birhanu/pathviz/api/i"
	"github.com/beka-birhanu/pathviz/api/identity"
	solverapi "github.com/beka-birhanu/pathviz/api/solver"
	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/infrastruture/logger"
	"github.com/beka-birhanu/pathviz/infrastruture/token"
	"github.com/beka-birhanu/pathviz/service"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "test-api-key"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gen, err := solver.NewGenerator(&solver.GeneratorOptions{Seed: 11})
	require.NoError(t, err)
	svc, err := service.NewSolverService(&service.SolverServiceConfig{
		Generator: gen,
		Logger:    logger.NewJSON("SOLVER", io.Discard),
	})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("secret", "pathviz")
	ids, err := identity.NewIdentityServer(tokenizer, apiKey, time.Minute)
	require.NoError(t, err)
	solverCtrl, err := solverapi.NewController(svc, svc, time.Second)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []apii.Controller{ids, solverCtrl},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
		Mode:                    gin.TestMode,
	})
	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server, key string) *Client {
	t.Helper()
	backend, err := New(&Config{BaseURL: srv.URL + "/api/v1", APIKey: key, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return backend.(*Client)
}

func TestClientAgainstServer(t *testing.T) {
	srv := newServer(t)
	client := newClient(t, srv, apiKey)
	ctx := context.Background()

	g, err := client.GenerateGrid(ctx, 20, 30)
	require.NoError(t, err)
	assert.Equal(t, 20, g.Width())
	assert.Equal(t, 30, g.Height())
	assert.Equal(t, 1, g.Count(grid.Start))

	scenario, err := grid.Parse(
		"S...#.",
		"#.....",
		"..###.",
		".#..#.",
		"....D#",
	)
	require.NoError(t, err)

	for _, alg := range solver.Algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			reply, err := client.Solve(ctx, solver.Request{
				Algorithm:   alg,
				Grid:        scenario,
				Start:       grid.Point{Row: 0, Col: 0},
				Destination: grid.Point{Row: 4, Col: 4},
			})
			require.NoError(t, err)
			assert.Equal(t, alg.ReportsVisited(), reply.WithVisited)
			require.NotEmpty(t, reply.Path)
			assert.Equal(t, grid.Point{Row: 4, Col: 4}, reply.Path[len(reply.Path)-1])
		})
	}
}

func TestClientReusesToken(t *testing.T) {
	srv := newServer(t)
	client := newClient(t, srv, apiKey)

	_, err := client.GenerateGrid(context.Background(), 4, 4)
	require.NoError(t, err)
	first := client.token
	_, err = client.GenerateGrid(context.Background(), 4, 4)
	require.NoError(t, err)
	assert.Equal(t, first, client.token)
}

func TestClientWrongKey(t *testing.T) {
	srv := newServer(t)
	client := newClient(t, srv, "nope")

	_, err := client.GenerateGrid(context.Background(), 4, 4)
	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, 401, status.Code)
}

func TestClientBadDimensions(t *testing.T) {
	srv := newServer(t)
	client := newClient(t, srv, apiKey)

	_, err := client.GenerateGrid(context.Background(), 1000, 4)
	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, 400, status.Code)
}

func TestClientServerDown(t *testing.T) {
	srv := newServer(t)
	client := newClient(t, srv, apiKey)
	srv.Close()

	_, err := client.GenerateGrid(context.Background(), 4, 4)
	assert.Error(t, err)
}
