// File: internal/moderation/handler.go
package moderation

import (
	"errors"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for moderation handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new moderation handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for moderation operations. Every route
// requires a moderator or admin caller.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, moderatorRoleMW gin.HandlerFunc) {
	moderationGroup := router.Group("/moderation")
	moderationGroup.Use(authMW)
	moderationGroup.Use(moderatorRoleMW)
	{
		moderationGroup.GET("/cars", h.listPendingCars)
		moderationGroup.GET("/cars/:id", h.getCar)
		moderationGroup.POST("/cars/:id/approve", h.approveCar)
		moderationGroup.POST("/cars/:id/reject", h.rejectCar)
	}
}

func (h *Handler) listPendingCars(c *gin.Context) {
	var page common.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid query parameters: "+err.Error()))
		return
	}

	cars, pagination, err := h.service.PendingCars(c.Request.Context(), page)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]car.CarResponse, len(cars))
	for i, carModel := range cars {
		responses[i] = car.ToCarResponse(&carModel)
	}
	common.RespondPaginated(c, "Pending cars retrieved successfully.", responses, pagination)
}

func (h *Handler) getCar(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid car ID format."))
		return
	}

	carModel, history, err := h.service.GetCar(c.Request.Context(), carID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Car retrieved successfully.", CarDetailResponse{
		Car:      car.ToCarResponse(carModel),
		Feedback: history,
	})
}

func (h *Handler) approveCar(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid car ID format."))
		return
	}

	caller := common.GetCallerFromContext(c)
	carModel, err := h.service.Approve(c.Request.Context(), caller, carID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Car approved successfully.", car.ToCarResponse(carModel))
}

func (h *Handler) rejectCar(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid car ID format."))
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Reject car: Invalid request body", zap.Error(err), zap.String("carID", carID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	caller := common.GetCallerFromContext(c)
	carModel, err := h.service.Reject(c.Request.Context(), caller, carID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Car rejected successfully.", car.ToCarResponse(carModel))
}
