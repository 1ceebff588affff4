package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claimsKey = "authClaims"

// RequireAuth gates mutating verbs behind a valid bearer token. Read verbs
// and preflight requests pass through untouched, so the middleware can wrap
// whole route groups. Every refusal carries the WWW-Authenticate challenge.
func RequireAuth(tokens *TokenService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPut, http.MethodPost, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			challenge(c)
			return
		}
		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			log.Info("rejected bearer token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			challenge(c)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatus(http.StatusUnauthorized)
}

// ClaimsFrom returns the validated claims stored by RequireAuth, if any.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}
