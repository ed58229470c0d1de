// Package solverclient reaches a remote solver API over HTTP.
package solverclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/beka-birhanu/pathviz/api/identity"
	solverapi "github.com/beka-birhanu/pathviz/api/solver"
	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
)

const tokenSlack = 30 * time.Second // Refresh this long before expiry.

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("solver api: %d %s", e.Code, e.Message)
}

// Config configures a Client.
type Config struct {
	BaseURL    string // Up to and including the version, e.g. http://localhost:8080/api/v1
	ClientID   string
	APIKey     string
	HTTPClient *http.Client
}

// Client implements the solver backend on top of the HTTP API.
type Client struct {
	baseURL  string
	clientID string
	apiKey   string
	http     *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

func New(c *Config) (i.SolverBackend, error) {
	if c.BaseURL == "" {
		return nil, errors.New("solver client needs a base url")
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	clientID := c.ClientID
	if clientID == "" {
		clientID = "pathviz"
	}
	return &Client{
		baseURL:  strings.TrimRight(c.BaseURL, "/"),
		clientID: clientID,
		apiKey:   c.APIKey,
		http:     httpClient,
	}, nil
}

// Solve sends one search command.
func (c *Client) Solve(ctx context.Context, req solver.Request) (solver.Reply, error) {
	if err := req.Validate(); err != nil {
		return solver.Reply{}, err
	}
	body := solverapi.SolveRequest{Arr: req.Grid, Start: &req.Start}
	if req.Algorithm.ReportsVisited() {
		dest := req.Destination
		body.Dest = &dest
	}

	var reply solver.Reply
	if err := c.call(ctx, "/"+req.Algorithm.Command(), body, &reply); err != nil {
		return solver.Reply{}, err
	}
	return reply, nil
}

// GenerateGrid asks the API for a new grid.
func (c *Client) GenerateGrid(ctx context.Context, width, height int) (*grid.Grid, error) {
	var g grid.Grid
	body := solverapi.GenerateGridRequest{Width: width, Height: height}
	if err := c.call(ctx, "/generate_grid", body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// call posts an authorized request, renewing the token once on 401.
func (c *Client) call(ctx context.Context, path string, body, out any) error {
	for attempt := 0; ; attempt++ {
		token, err := c.bearer(ctx)
		if err != nil {
			return err
		}
		err = c.post(ctx, path, token, body, out)
		var status *StatusError
		if attempt == 0 && errors.As(err, &status) && status.Code == http.StatusUnauthorized {
			c.forgetToken()
			continue
		}
		return err
	}
}

func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Add(tokenSlack).Before(c.expires) {
		return c.token, nil
	}

	var resp identity.TokenResponse
	req := identity.TokenRequest{ClientID: c.clientID, APIKey: c.apiKey}
	if err := c.post(ctx, "/auth/token", "", req, &resp); err != nil {
		return "", fmt.Errorf("fetching token: %w", err)
	}
	c.token = resp.Token
	c.expires = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	return c.token, nil
}

func (c *Client) forgetToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s reply: %w", path, err)
	}
	return nil
}
