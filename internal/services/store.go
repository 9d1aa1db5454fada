package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

// Store is the persistence surface the executor, the interchange service and
// the name checks on categories and tags depend on.
type Store interface {
	GetTemplate(ctx context.Context, id string) (*models.PromptTemplate, error)
	ListTemplates(ctx context.Context, filter TemplateFilter) ([]models.PromptTemplate, int64, error)
	SaveTemplate(ctx context.Context, t *models.PromptTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	FindTagByName(ctx context.Context, name string) (*models.Tag, error)
	AppendExecution(ctx context.Context, e *models.Execution) error
}

// TemplateFilter narrows ListTemplates. Zero values mean no filter; Limit <= 0
// returns every match.
type TemplateFilter struct {
	Search     string
	CategoryID string
	TagID      string
	Page       int
	Limit      int
}

// GormStore implements Store on gorm with a redis read-through cache. A nil db
// means database.DB.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DefaultStore backs the package-level service functions.
var DefaultStore Store = &GormStore{}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	db := s.db
	if db == nil {
		db = database.DB
	}
	return db.WithContext(ctx)
}

func (s *GormStore) GetTemplate(ctx context.Context, id string) (*models.PromptTemplate, error) {
	var template models.PromptTemplate
	if cacheGet(ctx, templateCacheKey(id), &template) {
		return &template, nil
	}

	if err := s.conn(ctx).Where("id = ?", id).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "prompt template", ID: id}
		}
		return nil, err
	}

	cacheSet(ctx, templateCacheKey(id), &template)
	return &template, nil
}

func (s *GormStore) ListTemplates(ctx context.Context, filter TemplateFilter) ([]models.PromptTemplate, int64, error) {
	var templates []models.PromptTemplate
	var total int64

	db := s.conn(ctx).Model(&models.PromptTemplate{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}
	if filter.CategoryID != "" {
		db = db.Where("category_id = ?", filter.CategoryID)
	}
	if filter.TagID != "" {
		if db.Dialector.Name() == "postgres" {
			db = db.Where("tag_ids::jsonb @> ?::jsonb", `["`+filter.TagID+`"]`)
		} else {
			db = db.Where("tag_ids LIKE ?", `%"`+filter.TagID+`"%`)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("updated_at desc")
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := db.Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

func (s *GormStore) SaveTemplate(ctx context.Context, t *models.PromptTemplate) error {
	if err := s.conn(ctx).Save(t).Error; err != nil {
		return err
	}
	cacheDel(ctx, templateCacheKey(t.ID))
	return nil
}

// DeleteTemplate removes the template and its execution history together.
func (s *GormStore) DeleteTemplate(ctx context.Context, id string) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_template_id = ?", id).Delete(&models.Execution{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.PromptTemplate{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &NotFoundError{Resource: "prompt template", ID: id}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cacheDel(ctx, templateCacheKey(id))
	return nil
}

func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if cacheGet(ctx, CategoriesCacheKey, &categories) {
		return categories, nil
	}
	if err := s.conn(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	cacheSet(ctx, CategoriesCacheKey, categories)
	return categories, nil
}

func (s *GormStore) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := s.conn(ctx).Where("name_key = ?", models.NameKey(name)).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "category", ID: name}
		}
		return nil, err
	}
	return &category, nil
}

func (s *GormStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if cacheGet(ctx, TagsCacheKey, &tags) {
		return tags, nil
	}
	if err := s.conn(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	cacheSet(ctx, TagsCacheKey, tags)
	return tags, nil
}

func (s *GormStore) FindTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.conn(ctx).Where("name_key = ?", models.NameKey(name)).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "tag", ID: name}
		}
		return nil, err
	}
	return &tag, nil
}

func (s *GormStore) AppendExecution(ctx context.Context, e *models.Execution) error {
	return s.conn(ctx).Create(e).Error
}

