package prompt

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api/v1/common"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/placeholder"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/suggest"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxImportBytes  = 1 << 20
)

// ListPrompts godoc
// @Summary List prompt templates
// @Description Get a paginated list of prompt templates, most recently updated first
// @Tags prompts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Search by name or content"
// @Param category_id query string false "Filter by category"
// @Param tag_id query string false "Filter by tag"
// @Success 200 {object} utils.Response{data=PromptListResponse}
// @Failure 500 {object} utils.Response
// @Router /prompts [get]
func ListPrompts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	templates, total, err := services.ListPromptTemplates(c.Request.Context(), services.TemplateFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		TagID:      c.Query("tag_id"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", PromptListResponse{
		Total: total,
		Items: templates,
	}))
}

// CreatePrompt godoc
// @Summary Create a prompt template
// @Description Create a template. Variables are reconciled with the placeholders in content.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body CreatePromptRequest true "Create Prompt Request"
// @Success 201 {object} utils.Response{data=models.PromptTemplate}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts [post]
func CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	template, err := services.CreatePromptTemplate(c.Request.Context(), models.TemplateDraft{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
		Variables:   req.Variables,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Prompt created successfully", template))
}

// GetPrompt godoc
// @Summary Get a prompt template
// @Tags prompts
// @Produce json
// @Param id path string true "Prompt ID"
// @Success 200 {object} utils.Response{data=models.PromptTemplate}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [get]
func GetPrompt(c *gin.Context) {
	template, err := services.GetPromptTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", template))
}

// UpdatePrompt godoc
// @Summary Update a prompt template
// @Description Partially update a template; omitted fields keep their value
// @Tags prompts
// @Accept json
// @Produce json
// @Param id path string true "Prompt ID"
// @Param request body UpdatePromptRequest true "Update Prompt Request"
// @Success 200 {object} utils.Response{data=models.PromptTemplate}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [put]
func UpdatePrompt(c *gin.Context) {
	var req UpdatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	template, err := services.UpdatePromptTemplate(c.Request.Context(), c.Param("id"), services.TemplateUpdate{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
		Variables:   req.Variables,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", template))
}

// DeletePrompt godoc
// @Summary Delete a prompt template
// @Description Delete a template and its execution history
// @Tags prompts
// @Produce json
// @Param id path string true "Prompt ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [delete]
func DeletePrompt(c *gin.Context) {
	if err := services.DeletePromptTemplate(c.Request.Context(), c.Param("id")); err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}

// ExecutePrompt godoc
// @Summary Execute a prompt template
// @Description Substitute variables, call the language model and record the execution. Provider failures produce a marked fallback result, not an error.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body ExecutePromptRequest true "Execute Prompt Request"
// @Success 200 {object} utils.Response{data=models.Execution}
// @Failure 400 {object} utils.Response{data=common.MissingVariablesData}
// @Failure 404 {object} utils.Response
// @Router /prompts/execute [post]
func ExecutePrompt(c *gin.Context) {
	var req ExecutePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	execution, err := services.Executor().Execute(c.Request.Context(), req.PromptID, req.Variables)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt executed", execution))
}

// ListExecutions godoc
// @Summary List executions of a prompt template
// @Tags prompts
// @Produce json
// @Param id path string true "Prompt ID"
// @Param limit query int false "Maximum number of records" default(50)
// @Success 200 {object} utils.Response{data=[]models.Execution}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/executions [get]
func ListExecutions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	executions, err := services.ListExecutions(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", executions))
}

// ExportPrompt godoc
// @Summary Export a prompt template as YAML
// @Description Category and tags are written by name; references that no longer resolve are left out
// @Tags prompts
// @Produce application/x-yaml
// @Param id path string true "Prompt ID"
// @Success 200 {string} string "YAML document"
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/export-yaml [get]
func ExportPrompt(c *gin.Context) {
	text, template, err := services.ExportPromptTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.yaml"`, fileSlug(template.Name)))
	c.Data(http.StatusOK, "application/x-yaml; charset=utf-8", []byte(text))
}

// ImportPrompt godoc
// @Summary Import a prompt template from YAML
// @Description Accepts either {"yaml": "..."} as JSON or the raw YAML document as the body
// @Tags prompts
// @Accept json
// @Accept application/x-yaml
// @Produce json
// @Param request body ImportPromptRequest true "Import Prompt Request"
// @Success 201 {object} utils.Response{data=models.PromptTemplate}
// @Failure 400 {object} utils.Response
// @Router /prompts/import-yaml [post]
func ImportPrompt(c *gin.Context) {
	var text string
	if c.ContentType() == gin.MIMEJSON {
		var req ImportPromptRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		text = req.YAML
	} else {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Could not read request body"))
			return
		}
		if len(body) > maxImportBytes {
			c.JSON(http.StatusRequestEntityTooLarge, utils.NewErrorResponse(http.StatusRequestEntityTooLarge, "YAML document is too large"))
			return
		}
		text = string(body)
	}

	template, err := services.ImportPromptTemplate(c.Request.Context(), text)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Prompt imported successfully", template))
}

// ReconcileVariables godoc
// @Summary Reconcile a variable list with content
// @Description Adds variables for new placeholders and drops variables whose placeholder is gone. Nothing is stored.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Reconcile Request"
// @Success 200 {object} utils.Response{data=placeholder.Reconciliation}
// @Failure 400 {object} utils.Response
// @Router /prompts/reconcile [post]
func ReconcileVariables(c *gin.Context) {
	var req ReconcileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", placeholder.Reconcile(req.Content, req.Variables)))
}

// RenameVariable godoc
// @Summary Rename a variable
// @Description Renames the variable in the content and in the variable list. Nothing is stored.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body RenameVariableRequest true "Rename Variable Request"
// @Success 200 {object} utils.Response{data=services.VariableEdit}
// @Failure 400 {object} utils.Response
// @Router /prompts/variables/rename [post]
func RenameVariable(c *gin.Context) {
	var req RenameVariableRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	edit, err := services.RenameVariable(req.Content, req.Variables, req.OldName, req.NewName)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", edit))
}

// RemoveVariable godoc
// @Summary Remove a variable
// @Description Deletes the variable and every placeholder that refers to it. Nothing is stored.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body RemoveVariableRequest true "Remove Variable Request"
// @Success 200 {object} utils.Response{data=services.VariableEdit}
// @Failure 400 {object} utils.Response
// @Router /prompts/variables/remove [post]
func RemoveVariable(c *gin.Context) {
	var req RemoveVariableRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", services.RemoveVariable(req.Content, req.Variables, req.Name)))
}

// SuggestCategorization godoc
// @Summary Suggest a category and tags
// @Description Asks the language model, falling back to keyword matching
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body SuggestRequest true "Suggest Request"
// @Success 200 {object} utils.Response{data=suggest.Suggestion}
// @Failure 400 {object} utils.Response
// @Router /prompts/suggest [post]
func SuggestCategorization(c *gin.Context) {
	var req SuggestRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	suggestion, err := services.SuggestCategorization(c.Request.Context(), suggest.Input{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", suggestion))
}

// fileSlug turns a template name into a safe download file name.
func fileSlug(name string) string {
	slug := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return '-'
	}, strings.TrimSpace(name))
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "prompt"
	}
	return slug
}
