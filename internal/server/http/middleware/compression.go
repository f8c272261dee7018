package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest transparently unwraps gzip-compressed request bodies.
// Response compression is handled by gin-contrib/gzip on the router.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := strings.TrimSpace(c.GetHeader("Content-Encoding"))
		if !strings.EqualFold(encoding, "gzip") {
			c.Next()
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid gzip body"})
			return
		}
		defer reader.Close()

		c.Request.Body = reader
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
