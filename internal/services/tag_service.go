package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

// TagInput is the editable part of a tag. Nil fields are left unchanged on
// update.
type TagInput struct {
	Name        *string
	Description *string
	Color       *string
}

func ListTags(ctx context.Context) ([]models.Tag, error) {
	return DefaultStore.ListTags(ctx)
}

func GetTag(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "tag", ID: id}
		}
		return nil, err
	}
	return &tag, nil
}

func CreateTag(ctx context.Context, input TagInput) (*models.Tag, error) {
	tag := &models.Tag{}
	applyTagInput(tag, input)
	if tag.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := ensureTagNameFree(ctx, tag.Name, ""); err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	cacheDel(ctx, TagsCacheKey)
	return tag, nil
}

func UpdateTag(ctx context.Context, id string, input TagInput) (*models.Tag, error) {
	tag, err := GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTagInput(tag, input)
	if tag.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := ensureTagNameFree(ctx, tag.Name, id); err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).Save(tag).Error; err != nil {
		return nil, err
	}
	cacheDel(ctx, TagsCacheKey)
	return tag, nil
}

// DeleteTag removes the tag. Templates keep the dangling id; export and
// listing skip it.
func DeleteTag(ctx context.Context, id string) error {
	result := database.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "tag", ID: id}
	}
	cacheDel(ctx, TagsCacheKey)
	return nil
}

func applyTagInput(tag *models.Tag, input TagInput) {
	if input.Name != nil {
		tag.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		tag.Description = *input.Description
	}
	if input.Color != nil && *input.Color != "" {
		tag.Color = *input.Color
	}
}

func ensureTagNameFree(ctx context.Context, name, exceptID string) error {
	found, err := DefaultStore.FindTagByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return nameTaken(name, found.ID, exceptID)
}
