package controllers

import (
	"net/http"
	"strconv"

	"github.com/bingolive/bingo-backend/models"
	"github.com/bingolive/bingo-backend/store"
	"github.com/gin-gonic/gin"
)

const profileKey = "profile"

// CurrentUser resolves the X-User-ID header to a profile and stores it
// in the request context. Authentication itself lives in front of this
// service; the header is trusted.
func CurrentUser(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.GetHeader("X-User-ID")
		if idStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-User-ID header"})
			return
		}
		profile, err := st.GetProfile(c.Request.Context(), uint(id))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		c.Set(profileKey, profile)
		c.Next()
	}
}

// AdminRequired gates operator actions: round create/draw/finish and
// participant removal. Run after CurrentUser.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentProfile(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}

func currentProfile(c *gin.Context) *models.Profile {
	return c.MustGet(profileKey).(*models.Profile)
}
