package auth

import "github.com/gin-gonic/gin"

const (
	userIDKey     = "userID"
	facilityIDKey = "facilityID"
	roleKey       = "role"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetFacilityID returns the facility the authenticated user acts for, or empty string.
func GetFacilityID(c *gin.Context) string {
	return c.GetString(facilityIDKey)
}

// GetRole returns the authenticated user's role or empty string.
func GetRole(c *gin.Context) string {
	return c.GetString(roleKey)
}
