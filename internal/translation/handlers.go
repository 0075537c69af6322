package translation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/openidx/permmap/internal/common/errors"
)

// ToFrontendRequest carries backend permissions to translate
type ToFrontendRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// ToFrontendResponse carries the granted capabilities
type ToFrontendResponse struct {
	Capabilities []string `json:"capabilities"`
}

// ToBackendRequest carries capabilities to expand
type ToBackendRequest struct {
	Capabilities []string `json:"capabilities" binding:"required"`
}

// ToBackendResponse carries the backend permissions behind the capabilities
type ToBackendResponse struct {
	Permissions []string `json:"permissions"`
}

// RegisterRoutes mounts the translation endpoints on router
func RegisterRoutes(router *gin.RouterGroup, svc *Service) {
	perms := router.Group("/permissions")
	{
		perms.POST("/frontend", svc.handleToFrontend)
		perms.POST("/backend", svc.handleToBackend)
		perms.GET("/mapping", svc.handleGetMapping)
	}

	router.GET("/me/capabilities", svc.handleMyCapabilities)
}

func (s *Service) handleToFrontend(c *gin.Context) {
	var req ToFrontendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError("Invalid request body", err))
		return
	}

	c.JSON(http.StatusOK, ToFrontendResponse{
		Capabilities: s.ToFrontend(c.Request.Context(), req.Permissions),
	})
}

func (s *Service) handleToBackend(c *gin.Context) {
	var req ToBackendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError("Invalid request body", err))
		return
	}

	c.JSON(http.StatusOK, ToBackendResponse{
		Permissions: s.ToBackend(c.Request.Context(), req.Capabilities),
	})
}

func (s *Service) handleGetMapping(c *gin.Context) {
	c.JSON(http.StatusOK, s.Mapping())
}

func (s *Service) handleMyCapabilities(c *gin.Context) {
	token, err := ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		apperrors.HandleError(c, apperrors.Unauthorized("Bearer token required").WithDetails(err.Error()))
		return
	}

	capabilities, err := s.CapabilitiesFromToken(c.Request.Context(), token)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	s.logger.Debug("Resolved capabilities from token", zap.Int("capabilities", len(capabilities)))
	c.JSON(http.StatusOK, ToFrontendResponse{Capabilities: capabilities})
}
