package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GraftonJ/repsy-be/pkg/errors"
	"github.com/GraftonJ/repsy-be/pkg/httputil"
	"github.com/GraftonJ/repsy-be/pkg/token"
)

const ContextDoctorID = "doctorID"

type AuthMiddleware struct {
	issuer  *token.Issuer
	revoker token.Revoker
}

func NewAuthMiddleware(issuer *token.Issuer, revoker token.Revoker) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer, revoker: revoker}
}

// Authenticate verifies the bearer token and sets the doctor id in the
// request context. Revoked tokens are rejected even before expiry.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c)
		if raw == "" {
			httputil.RespondWithError(c, errors.Unauthorized("missing authorization header"))
			c.Abort()
			return
		}

		claims, err := m.issuer.Verify(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthorized("invalid token"))
			c.Abort()
			return
		}

		if !claims.LoggedIn || claims.DoctorID == 0 {
			httputil.RespondWithError(c, errors.Unauthorized("not logged in"))
			c.Abort()
			return
		}

		revoked, err := m.revoker.IsRevoked(c.Request.Context(), raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Internal(err))
			c.Abort()
			return
		}
		if revoked {
			httputil.RespondWithError(c, errors.Unauthorized("token revoked"))
			c.Abort()
			return
		}

		c.Set(ContextDoctorID, claims.DoctorID)
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header, falling
// back to the Auth header the API issues tokens on.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		header = c.GetHeader("Auth")
	}
	if header == "" {
		return ""
	}

	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return ""
}
