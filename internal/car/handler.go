// File: internal/car/handler.go
package car

import (
	"errors"

	"roadsuite_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for car handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new car handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for car listing operations. The public
// reads take optional auth so dealers see their own non-approved cars.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, optionalAuthMW gin.HandlerFunc) {
	carGroup := router.Group("/cars")
	{
		carGroup.GET("", optionalAuthMW, h.searchCars)
		carGroup.GET("/:id", optionalAuthMW, h.getCarByID)

		authedCarGroup := carGroup.Group("")
		authedCarGroup.Use(authMW)
		{
			authedCarGroup.GET("/my-cars", h.getMyCars)
			authedCarGroup.POST("", h.createCar)
			authedCarGroup.PUT("/:id", h.updateCar)
			authedCarGroup.DELETE("/:id", h.deleteCar)
		}
	}
}

func (h *Handler) bindSearchQuery(c *gin.Context) (SearchQuery, error) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return query, common.ErrBadRequest.WithDetails("Invalid query parameters: " + err.Error())
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return query, common.ErrBadRequest.WithDetails("Invalid category_id format.")
		}
		query.CategoryID = &categoryID
	}
	return query, nil
}

func (h *Handler) searchCars(c *gin.Context) {
	query, err := h.bindSearchQuery(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	caller := common.GetCallerFromContext(c)
	cars, pagination, err := h.service.Search(c.Request.Context(), caller, query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Cars retrieved successfully.", toCarResponses(cars), pagination)
}

func (h *Handler) getMyCars(c *gin.Context) {
	query, err := h.bindSearchQuery(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	caller := common.GetCallerFromContext(c)
	cars, pagination, err := h.service.OwnListings(c.Request.Context(), caller, query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Your cars retrieved successfully.", toCarResponses(cars), pagination)
}

func (h *Handler) getCarByID(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid car ID format."))
		return
	}

	caller := common.GetCallerFromContext(c)
	carModel, err := h.service.GetByID(c.Request.Context(), caller, carID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Car retrieved successfully.", ToCarResponse(carModel))
}

func (h *Handler) createCar(c *gin.Context) {
	caller := common.GetCallerFromContext(c)

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create car: Invalid request body", zap.Error(err), zap.String("userID", caller.UserID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	carModel, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Car created successfully.", ToCarResponse(carModel))
}

func (h *Handler) updateCar(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid car ID format."))
		return
	}

	caller := common.GetCallerFromContext(c)

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update car: Invalid request body", zap.Error(err), zap.String("carID", carID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	carModel, err := h.service.Update(c.Request.Context(), caller, carID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Car updated successfully.", ToCarResponse(carModel))
}

func (h *Handler) deleteCar(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid car ID format."))
		return
	}

	caller := common.GetCallerFromContext(c)
	action := c.Query("action")

	// The HTTP surface grants moderators delete permission.
	if err := h.service.Delete(c.Request.Context(), caller, carID, action, true); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func toCarResponses(cars []Car) []CarResponse {
	responses := make([]CarResponse, len(cars))
	for i, carModel := range cars {
		responses[i] = ToCarResponse(&carModel)
	}
	return responses
}
