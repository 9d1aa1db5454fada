package category

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api/v1/common"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/utils"
)

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} utils.Response{data=[]models.Category}
// @Failure 500 {object} utils.Response
// @Router /categories [get]
func ListCategories(c *gin.Context) {
	categories, err := services.ListCategories(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", categories))
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.Response{data=models.Category}
// @Failure 404 {object} utils.Response
// @Router /categories/{id} [get]
func GetCategory(c *gin.Context) {
	category, err := services.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", category))
}

// CreateCategory godoc
// @Summary Create a category
// @Description Names are unique ignoring case
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} utils.Response{data=models.Category}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /categories [post]
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	category, err := services.CreateCategory(c.Request.Context(), services.CategoryInput{
		Name:        &req.Name,
		Description: &req.Description,
		Color:       &req.Color,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Category created successfully", category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} utils.Response{data=models.Category}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /categories/{id} [put]
func UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	category, err := services.UpdateCategory(c.Request.Context(), c.Param("id"), services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category updated successfully", category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Fails with 409 while prompt templates still use the category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	if err := services.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category deleted successfully", nil))
}
