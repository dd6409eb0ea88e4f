package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter registers the health check, the city request intake and, when a
// catalog is given, the profile endpoints. Forwarding headers are honoured
// only from trustedProxies (IPs or CIDRs); with none the client IP is the
// connection's remote address.
func NewRouter(requests *CityRequestHandler, profiles *ProfileHandler, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/city-requests", requests.Create)

	if profiles != nil {
		r.GET("/profiles", profiles.List)
		r.GET("/profiles/:id", profiles.Get)
	}

	return r, nil
}
