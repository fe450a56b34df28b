package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/service"
)

// CategoryInput defines the structure for creating a category.
type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=100" example:"General"`
	Description string `json:"description" example:"Anything goes"`
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CategoryInput true "Category Info"
// @Success      201  {object}  dto.CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Moderator access required"
// @Failure      409  {object}  ErrorResponse "Category already exists"
// @Router       /categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.services.Categories.Create(c.Request.Context(), service.CategoryInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CategoryResponse
// @Router       /categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.services.Categories.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /categories/{id} [get]
func (h *Handler) GetCategoryByID(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}
	category, err := h.services.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Detaches the category from its posts; the posts stay.
// @Tags         categories
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse "Moderator access required"
// @Failure      404  {object}  ErrorResponse
// @Router       /categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}
	if err := h.services.Categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
