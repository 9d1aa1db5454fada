package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/placeholder"
)

// TemplateUpdate carries a partial update; nil fields are left unchanged. A
// CategoryID pointing at "" clears the category.
type TemplateUpdate struct {
	Name        *string
	Description *string
	Content     *string
	CategoryID  *string
	TagIDs      *[]string
	Variables   *[]models.Variable
}

// CreatePromptTemplate validates the draft, reconciles its variables with its
// content and stores it.
func CreatePromptTemplate(ctx context.Context, draft models.TemplateDraft) (*models.PromptTemplate, error) {
	template := &models.PromptTemplate{
		Name:        strings.TrimSpace(draft.Name),
		Description: draft.Description,
		Content:     draft.Content,
		CategoryID:  normalizeCategoryID(draft.CategoryID),
		TagIDs:      models.DedupeIDs(draft.TagIDs),
	}

	if err := prepareTemplate(template, draft.Variables); err != nil {
		return nil, err
	}
	if err := ensureCategoryExists(ctx, template.CategoryID); err != nil {
		return nil, err
	}
	if err := DefaultStore.SaveTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// UpdatePromptTemplate applies a partial update. Last write wins. The category
// is only checked when the update sets it, so a stored id whose category has
// gone away does not block unrelated edits.
func UpdatePromptTemplate(ctx context.Context, id string, update TemplateUpdate) (*models.PromptTemplate, error) {
	template, err := DefaultStore.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		template.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		template.Description = *update.Description
	}
	if update.Content != nil {
		template.Content = *update.Content
	}
	if update.CategoryID != nil {
		template.CategoryID = normalizeCategoryID(update.CategoryID)
	}
	if update.TagIDs != nil {
		template.TagIDs = models.DedupeIDs(*update.TagIDs)
	}
	variables := template.VariableList()
	if update.Variables != nil {
		variables = *update.Variables
	}

	if err := prepareTemplate(template, variables); err != nil {
		return nil, err
	}
	if update.CategoryID != nil {
		if err := ensureCategoryExists(ctx, template.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := DefaultStore.SaveTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// GetPromptTemplate retrieves a template by ID
func GetPromptTemplate(ctx context.Context, id string) (*models.PromptTemplate, error) {
	return DefaultStore.GetTemplate(ctx, id)
}

// ListPromptTemplates returns one page of templates, most recently updated
// first, and the total number of matches.
func ListPromptTemplates(ctx context.Context, filter TemplateFilter) ([]models.PromptTemplate, int64, error) {
	return DefaultStore.ListTemplates(ctx, filter)
}

// DeletePromptTemplate deletes a template together with its executions.
func DeletePromptTemplate(ctx context.Context, id string) error {
	return DefaultStore.DeleteTemplate(ctx, id)
}

// prepareTemplate validates the template fields and replaces its variables
// with the reconciled form of vars.
func prepareTemplate(template *models.PromptTemplate, vars []models.Variable) error {
	if template.Name == "" {
		return invalid("name", "must not be empty")
	}
	if strings.TrimSpace(template.Content) == "" {
		return invalid("content", "must not be empty")
	}
	if err := models.ValidateVariables(vars); err != nil {
		return invalid("variables", err.Error())
	}

	rec := placeholder.Reconcile(template.Content, vars)
	template.Variables = rec.Variables
	if template.TagIDs == nil {
		template.TagIDs = []string{}
	}
	return nil
}

func ensureCategoryExists(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalid("category_id", "unknown category "+*id)
	}
	return nil
}

func normalizeCategoryID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}

// ListExecutions returns the execution history of an existing template.
func ListExecutions(ctx context.Context, templateID string, limit int) ([]models.Execution, error) {
	if _, err := DefaultStore.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}
	var executions []models.Execution
	db := database.DB.WithContext(ctx).Where("prompt_template_id = ?", templateID).Order("executed_at desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&executions).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return executions, nil
}
