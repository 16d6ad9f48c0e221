package middleware

import (
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/i18n"

	"github.com/gin-gonic/gin"
)

// Language negotiates the response language from ?lang= first, then
// Accept-Language, and stores it on the request context.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := i18n.Default().Match(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Header("Content-Language", tag.String())
		ctx := contextutil.WithLanguage(c.Request.Context(), tag)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
