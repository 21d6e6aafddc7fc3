package app

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inculture/skopelos-chatbot/internal/metrics"
)

const metricsRealm = `Basic realm="skopelos-metrics"`

// metricsAuthMiddleware enforces Basic Auth on the scrape endpoint.
// A disabled middleware passes every request through. Rejections are
// counted as "unauthorized" HTTP errors when m is set.
func metricsAuthMiddleware(enabled bool, username, password string, m *metrics.Metrics) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}

	reject := func(c *gin.Context) {
		if m != nil {
			m.RecordHTTPError("unauthorized", c.FullPath())
		}
		c.Header("WWW-Authenticate", metricsRealm)
		c.AbortWithStatus(http.StatusUnauthorized)
	}

	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			reject(c)
			return
		}

		// Both comparisons always run so timing does not reveal which part failed.
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username))
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(password))
		if userMatch&passMatch != 1 {
			reject(c)
			return
		}

		c.Next()
	}
}
