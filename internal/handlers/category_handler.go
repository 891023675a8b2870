package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
	"pennywise/internal/session"
)

const categoriesPath = "/categories"

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest is the form posted to create a category
type CreateCategoryRequest struct {
	Name string              `form:"name" binding:"required"`
	Type models.CategoryType `form:"type" binding:"required,category_type"`
}

// UpdateCategoryRequest is the form posted to rename a category
type UpdateCategoryRequest struct {
	Name string `form:"name" binding:"required"`
}

// ListCategories renders the category page
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		logError(c, err)
		redirectWithFlash(c, session.FlashError, "Error loading categories page.", "/dashboard")
		return
	}

	render(c, "categories.html", "Categories", gin.H{"Categories": categories})
}

// CreateCategory handles the creation of a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide a name and type."), categoriesPath)
		return
	}

	if _, err := h.categoryService.CreateCategory(userID, req.Name, req.Type); err != nil {
		redirectWithError(c, err, categoriesPath)
		return
	}

	redirectWithFlash(c, session.FlashSuccess, "Category created successfully.", categoriesPath)
}

// UpdateCategory renames a custom category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide a name."), categoriesPath)
		return
	}

	if _, err := h.categoryService.UpdateCategory(userID, c.Param("id"), req.Name); err != nil {
		redirectWithError(c, err, categoriesPath)
		return
	}

	redirectWithFlash(c, session.FlashSuccess, "Category updated successfully.", categoriesPath)
}

// DeleteCategory removes a custom category that no transaction uses
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	if err := h.categoryService.DeleteCategory(userID, c.Param("id")); err != nil {
		redirectWithError(c, err, categoriesPath)
		return
	}

	redirectWithFlash(c, session.FlashSuccess, "Category deleted successfully.", categoriesPath)
}
