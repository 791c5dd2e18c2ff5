package app

import (
	"net/http"
	"strings"

	"libraryapp_backend/db"
	"libraryapp_backend/session"

	"github.com/gin-gonic/gin"
)

// IdentityHeader carries the email established by the external identity
// provider. Token exchange happens out there; we only trust the header.
const IdentityHeader = "X-User-Email"

// AuthRequired resolves the caller to a staff user, creating the row on
// first sight. cache may be nil (tests); then every request hits the DB.
func AuthRequired(repo *db.Repo, cache *session.IdentityCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.ToLower(strings.TrimSpace(c.GetHeader(IdentityHeader)))
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "Authentication required"})
			return
		}

		if cache != nil {
			if id, err := cache.Get(c.Request.Context(), email); err == nil {
				c.Set("userID", id.UserID)
				c.Set("userEmail", id.Email)
				c.Next()
				return
			}
		}

		u, err := repo.FindOrCreateUserByEmail(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "Authentication failed"})
			return
		}
		if cache != nil {
			_ = cache.Put(c.Request.Context(), session.Identity{UserID: u.ID, Email: u.Email})
		}

		c.Set("userID", u.ID)
		c.Set("userEmail", u.Email)
		c.Next()
	}
}
