package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/chemsolver/internal/domain/locale"
)

const contextKeyLang = "lang"

// Locale resolves the display language of a request. An explicit ?lang= query
// parameter is kept verbatim so that unsupported values are rejected by the
// service; otherwise Accept-Language is negotiated against the supported
// languages. Requests carrying neither leave the language empty and get the
// service default.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		if q := strings.TrimSpace(c.Query("lang")); q != "" {
			c.Set(contextKeyLang, q)
		} else if h := c.GetHeader("Accept-Language"); h != "" {
			c.Set(contextKeyLang, locale.Negotiate(h).String())
		}
		c.Next()
	}
}

// GetLang returns the language resolved by Locale, or "".
func GetLang(c *gin.Context) string {
	return c.GetString(contextKeyLang)
}

//Personal.AI order the ending
