// Package api negotiates the version of the translation API
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/openidx/permmap/internal/common/errors"
)

const (
	// HeaderAPIVersion carries the negotiated version on requests and responses
	HeaderAPIVersion = "X-API-Version"

	// V1 is the only published version of the permission API
	V1 = "1.0"

	contextKey = "api_version"
)

// VersionMiddleware stamps responses with version and rejects requests that
// ask for a version outside supported with 406.
func VersionMiddleware(version string, supported ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(HeaderAPIVersion, version)

		requested := c.GetHeader(HeaderAPIVersion)
		if requested == "" {
			c.Set(contextKey, version)
			c.Next()
			return
		}

		matched, ok := negotiate(requested, supported)
		if !ok {
			apperrors.HandleError(c, apperrors.New(apperrors.ErrUnsupportedAPIVersion,
				"Requested API version is not supported", http.StatusNotAcceptable).
				WithMetadata("supported_versions", supported))
			c.Abort()
			return
		}

		c.Set(contextKey, matched)
		c.Next()
	}
}

// negotiate accepts "1" as shorthand for "1.0" and returns the full version
func negotiate(requested string, supported []string) (string, bool) {
	requested = strings.TrimPrefix(requested, "v")
	for _, v := range supported {
		if v == requested || strings.HasPrefix(v, requested+".") {
			return v, true
		}
	}
	return "", false
}

// GetVersion returns the negotiated version, V1 when none was negotiated
func GetVersion(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if version, ok := v.(string); ok {
			return version
		}
	}
	return V1
}
