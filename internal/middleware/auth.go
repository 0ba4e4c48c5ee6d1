package middleware

import (
	"strings"

	"attendance-be/internal/entities"
	"attendance-be/internal/errutil"
	"attendance-be/internal/jwt"
	"attendance-be/internal/models"

	"github.com/gin-gonic/gin"
)

// CallerKey is the gin context key holding the authenticated models.Caller.
const CallerKey = "caller"

// TokenValidator verifies access tokens.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller identity for downstream handlers.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abort(c, errutil.Unauthenticated("Authorization token is required"))
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			abort(c, errutil.Unauthenticated("Invalid or expired token"))
			return
		}

		role := claims.Role
		if !role.Valid() {
			role = entities.RoleUser
		}
		c.Set(CallerKey, models.Caller{
			UserID:   claims.Subject,
			Username: claims.Username,
			Role:     role,
		})
		c.Next()
	}
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

// RequireRole allows only callers holding one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	allowed := make(map[entities.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			abort(c, errutil.Unauthenticated("Authorization token is required"))
			return
		}
		if _, ok := allowed[caller.Role]; !ok {
			abort(c, errutil.Forbidden("Insufficient role"))
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errutil.HTTPStatus(errutil.KindOf(err)), models.ErrorResponse{
		Kind:    string(errutil.KindOf(err)),
		Message: errutil.PublicMessage(err),
	})
}
