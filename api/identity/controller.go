package identity

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/gin-gonic/gin"
)

const defaultTokenTTL = time.Hour

// TokenRequest exchanges the shared API key for a bearer token.
type TokenRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}

// TokenResponse carries a bearer token and its lifetime in seconds.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// IdentityServer issues bearer tokens to clients holding the API key.
type IdentityServer struct {
	tokenizer i.Tokenizer
	apiKey    string
	ttl       time.Duration
}

// NewIdentityServer creates a new IdentityServer. A zero ttl uses one hour.
func NewIdentityServer(ts i.Tokenizer, apiKey string, ttl time.Duration) (*IdentityServer, error) {
	if apiKey == "" {
		return nil, errors.New("identity server needs an api key")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &IdentityServer{
		tokenizer: ts,
		apiKey:    apiKey,
		ttl:       ttl,
	}, nil
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/token", c.issueToken)
	}
}

// RegisterProtected registers protected routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {}

func (c *IdentityServer) issueToken(ctx *gin.Context) {
	var request TokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if subtle.ConstantTimeCompare([]byte(request.APIKey), []byte(c.apiKey)) != 1 {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	token, err := c.tokenizer.Generate(map[string]interface{}{"sub": request.ClientID}, c.ttl)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing token"})
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresIn: int64(c.ttl.Seconds())})
}
