// File: internal/category/handler.go
package category

import (
	"errors"

	"roadsuite_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for category handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new category handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for category operations. Management
// routes require a moderator or admin caller.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, moderatorRoleMW gin.HandlerFunc) {
	categoryGroup := router.Group("/categories")
	{
		categoryGroup.GET("", h.getAllCategories)
		categoryGroup.GET("/:idOrSlug", h.getCategory)

		adminCategoryGroup := categoryGroup.Group("/admin")
		adminCategoryGroup.Use(authMW)
		adminCategoryGroup.Use(moderatorRoleMW)
		{
			adminCategoryGroup.POST("", h.adminCreateCategory)
			adminCategoryGroup.PUT("/:id", h.adminUpdateCategory)
			adminCategoryGroup.DELETE("/:id", h.adminDeleteCategory)
		}
	}
}

func (h *Handler) getAllCategories(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	categoryResponses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		categoryResponses[i] = ToCategoryResponse(&cat)
	}
	common.RespondOK(c, "Categories retrieved successfully.", categoryResponses)
}

func (h *Handler) getCategory(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")
	var catModel *Category
	var err error
	catID, parseErr := uuid.Parse(idOrSlug)
	if parseErr == nil {
		catModel, err = h.service.GetCategoryByID(c.Request.Context(), catID)
	} else {
		catModel, err = h.service.GetCategoryBySlug(c.Request.Context(), idOrSlug)
	}
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Category retrieved successfully.", ToCategoryResponse(catModel))
}

func (h *Handler) adminCreateCategory(c *gin.Context) {
	var req AdminCreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin create category: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	catModel, err := h.service.AdminCreateCategory(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Category created successfully.", ToCategoryResponse(catModel))
}

func (h *Handler) adminUpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid category ID format."))
		return
	}
	var req AdminCreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin update category: Invalid request body", zap.Error(err), zap.String("categoryID", categoryID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	catModel, err := h.service.AdminUpdateCategory(c.Request.Context(), categoryID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Category updated successfully.", ToCategoryResponse(catModel))
}

func (h *Handler) adminDeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid category ID format."))
		return
	}
	if err := h.service.AdminDeleteCategory(c.Request.Context(), categoryID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
