package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/openidx/permmap/internal/common/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(VersionMiddleware(V1, V1))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetVersion(c))
	})
	return router
}

func TestVersionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		requestVersion string
		expectedStatus int
		expectedBody   string
	}{
		{"no version header", "", http.StatusOK, "1.0"},
		{"exact version", "1.0", http.StatusOK, "1.0"},
		{"major only", "1", http.StatusOK, "1.0"},
		{"v prefix", "v1", http.StatusOK, "1.0"},
		{"unsupported version", "2.0", http.StatusNotAcceptable, ""},
		{"prefix is not a match", "1.", http.StatusNotAcceptable, ""},
	}

	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestVersion != "" {
				req.Header.Set(HeaderAPIVersion, tt.requestVersion)
			}
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, V1, w.Header().Get(HeaderAPIVersion))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestVersionMiddleware_UnsupportedBody(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAPIVersion, "3")
	newRouter().ServeHTTP(w, req)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrUnsupportedAPIVersion, resp.Error)
	assert.Equal(t, []interface{}{"1.0"}, resp.Metadata["supported_versions"])
}

func TestGetVersion_Default(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, V1, GetVersion(c))
}
