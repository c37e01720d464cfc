package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	UserIDKey = "userID"
	UserKey   = "user"
)

const credentialsDetail = "Could not validate credentials"

// IdentityResolver turns a bearer token into the user it was issued to.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the resolved user in the context. The response never says why a token was
// rejected.
func JWTAuthMiddleware(resolver IdentityResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(authHeader, " ")
		if authHeader == "" || !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			unauthorized(c)
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Debug("bearer token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			unauthorized(c)
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": credentialsDetail})
}
