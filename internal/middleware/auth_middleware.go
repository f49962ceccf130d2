package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appauth "github.com/bucodel/registration-backend/internal/app/auth"
	"github.com/bucodel/registration-backend/internal/app/models/dto"
	"github.com/bucodel/registration-backend/internal/pkg/auth"
)

// principalKey is the gin context key the authenticated principal lives under.
const principalKey = "principal"

// AuthMiddleware attaches an identity to requests and gates actions through
// the configured authorization policy.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authorizer appauth.Authorizer
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authorizer appauth.Authorizer, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Authenticate resolves an optional bearer token into a principal. Requests
// without an Authorization header continue anonymously; a present but invalid
// token is rejected rather than silently downgraded.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid authorization header"))
			return
		}

		principal, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			msg := "Authentication failed"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(msg))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAction gates a route on the authorization policy for one action.
// Authenticate must run earlier in the chain.
func (m *AuthMiddleware) RequireAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromContext(c)

		if err := m.authorizer.Check(principal, action); err != nil {
			m.logger.Warn().Str("action", action).Err(err).Msg("Action denied")
			if principal == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
			} else {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("Permission denied"))
			}
			return
		}

		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, or nil for an
// anonymous request.
func PrincipalFromContext(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, ok := v.(*auth.Principal)
	if !ok {
		return nil
	}
	return principal
}
