package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

// CategoryInput is the editable part of a category. Nil fields are left
// unchanged on update.
type CategoryInput struct {
	Name        *string
	Description *string
	Color       *string
}

func ListCategories(ctx context.Context) ([]models.Category, error) {
	return DefaultStore.ListCategories(ctx)
}

func GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "category", ID: id}
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory rejects names already taken ignoring case.
func CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{}
	applyCategoryInput(category, input)
	if category.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := ensureCategoryNameFree(ctx, category.Name, ""); err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	cacheDel(ctx, CategoriesCacheKey)
	return category, nil
}

func UpdateCategory(ctx context.Context, id string, input CategoryInput) (*models.Category, error) {
	category, err := GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCategoryInput(category, input)
	if category.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := ensureCategoryNameFree(ctx, category.Name, id); err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	cacheDel(ctx, CategoriesCacheKey)
	return category, nil
}

// DeleteCategory refuses to delete a category that templates still use.
func DeleteCategory(ctx context.Context, id string) error {
	if _, err := GetCategory(ctx, id); err != nil {
		return err
	}

	var inUse int64
	if err := database.DB.WithContext(ctx).Model(&models.PromptTemplate{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("%w: category is used by %d prompt templates", ErrConflict, inUse)
	}

	if err := database.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error; err != nil {
		return err
	}
	cacheDel(ctx, CategoriesCacheKey)
	return nil
}

func applyCategoryInput(category *models.Category, input CategoryInput) {
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Color != nil && *input.Color != "" {
		category.Color = *input.Color
	}
}

func ensureCategoryNameFree(ctx context.Context, name, exceptID string) error {
	found, err := DefaultStore.FindCategoryByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return nameTaken(name, found.ID, exceptID)
}

// nameTaken reports ErrConflict unless the row holding name is the one being
// updated.
func nameTaken(name, holderID, exceptID string) error {
	if holderID == exceptID {
		return nil
	}
	return fmt.Errorf("%w: name %q is already taken", ErrConflict, name)
}
