package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bevisngo/booksan-sub000/internal/pkg/response"
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "missing Authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid Authorization header format"})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(facilityIDKey, claims.FacilityID)
		c.Set(roleKey, claims.Role)

		c.Next()
	}
}

// RequireFacility rejects requests whose path facility differs from the token's.
// It MUST be used after AuthRequired.
func RequireFacility(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param(param) != GetFacilityID(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "facility access denied"})
			return
		}
		c.Next()
	}
}
