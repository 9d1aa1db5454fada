package tag

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api/v1/common"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/utils"
)

// ListTags godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {object} utils.Response{data=[]models.Tag}
// @Router /tags [get]
func ListTags(c *gin.Context) {
	tags, err := services.ListTags(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", tags))
}

// GetTag godoc
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} utils.Response{data=models.Tag}
// @Failure 404 {object} utils.Response
// @Router /tags/{id} [get]
func GetTag(c *gin.Context) {
	tag, err := services.GetTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", tag))
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body CreateTagRequest true "Create Tag Request"
// @Success 201 {object} utils.Response{data=models.Tag}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /tags [post]
func CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	tag, err := services.CreateTag(c.Request.Context(), services.TagInput{
		Name:        &req.Name,
		Description: &req.Description,
		Color:       &req.Color,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Tag created successfully", tag))
}

// UpdateTag godoc
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body UpdateTagRequest true "Update Tag Request"
// @Success 200 {object} utils.Response{data=models.Tag}
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /tags/{id} [put]
func UpdateTag(c *gin.Context) {
	var req UpdateTagRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	tag, err := services.UpdateTag(c.Request.Context(), c.Param("id"), services.TagInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tag updated successfully", tag))
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Templates keep the id; it is skipped on export
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /tags/{id} [delete]
func DeleteTag(c *gin.Context) {
	if err := services.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tag deleted successfully", nil))
}
