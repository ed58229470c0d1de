package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/pathviz/infrastruture/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokenizer := token.NewJwtService("secret", "pathviz")

	ids, err := NewIdentityServer(tokenizer, "key", time.Minute)
	require.NoError(t, err)

	engine := gin.New()
	public := engine.Group("/v1")
	ids.RegisterPublic(public)

	protected := engine.Group("/v1")
	protected.Use(Authoriz(tokenizer))
	protected.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, Subject(c))
	})
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func issue(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(engine, req)
}

func TestIssueToken(t *testing.T) {
	engine := newEngine(t)

	rec := issue(t, engine, `{"client_id":"viz","api_key":"key"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(60), resp.ExpiresIn)

	assert.Equal(t, http.StatusUnauthorized, issue(t, engine, `{"client_id":"viz","api_key":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, issue(t, engine, `{"client_id":"viz"}`).Code)
}

func TestAuthoriz(t *testing.T) {
	engine := newEngine(t)

	rec := issue(t, engine, `{"client_id":"viz","api_key":"key"}`)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", "Bearer " + resp.Token, http.StatusOK},
		{"lowercase scheme", "bearer " + resp.Token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", resp.Token, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(engine, req)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "viz", rec.Body.String())
			}
		})
	}
}

func TestNewIdentityServerNeedsKey(t *testing.T) {
	_, err := NewIdentityServer(token.NewJwtService("secret", "pathviz"), "", 0)
	assert.Error(t, err)
}
