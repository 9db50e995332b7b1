package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard hardening headers. HTTPS redirects are only
// enforced in production, behind a proxy that sets X-Forwarded-Proto.
func SecureHeaders(production bool) gin.HandlerFunc {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(c *gin.Context) {
		// Process writes the redirect itself before returning an error
		if err := sm.Process(c.Writer, c.Request); err != nil {
			log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("secure headers blocked request")
			c.Abort()
			return
		}
		c.Next()
	}
}
