// File: internal/dealer/handler.go
package dealer

import (
	"errors"

	"roadsuite_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for dealer profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new dealer profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for dealer profile operations. Profile
// removal is reserved for admins.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	dealerGroup := router.Group("/dealers")
	dealerGroup.Use(authMW)
	{
		dealerGroup.GET("/me", h.getOwnProfile)
		dealerGroup.PUT("/me", h.updateOwnProfile)

		adminDealerGroup := dealerGroup.Group("/admin")
		adminDealerGroup.Use(adminRoleMW)
		{
			adminDealerGroup.DELETE("/:id", h.adminDeleteProfile)
		}
	}
}

func (h *Handler) getOwnProfile(c *gin.Context) {
	caller := common.GetCallerFromContext(c)
	profile, err := h.service.GetOwnProfile(c.Request.Context(), caller.UserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Dealer profile retrieved successfully.", ToProfileResponse(profile))
}

func (h *Handler) updateOwnProfile(c *gin.Context) {
	caller := common.GetCallerFromContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update dealer profile: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	profile, err := h.service.UpdateOwnProfile(c.Request.Context(), caller.UserID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Dealer profile updated successfully.", ToProfileResponse(profile))
}

func (h *Handler) adminDeleteProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid dealer profile ID format."))
		return
	}

	if err := h.service.AdminDeleteProfile(c.Request.Context(), profileID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Dealer profile deleted successfully.", nil)
}
