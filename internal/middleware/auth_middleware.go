package middleware

import (
	"strings"

	adminerrors "go-absensi/internal/admin/errors"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	AdminIDKey       = "admin_id"
	AdminUsernameKey = "admin_username"
	AccessTokenName  = "access_token"
)

// TokenVerifier validates an admin access token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (adminID, username string, err error)
}

func AdminAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Abort(c, adminerrors.ErrTokenMissing)
			return
		}

		adminID, username, err := verifier.Verify(tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Set(AdminUsernameKey, username)

		ctx := contextutil.WithAdminID(c.Request.Context(), adminID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
