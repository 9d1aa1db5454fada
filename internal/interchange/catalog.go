package interchange

import "github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"

// CategoryLookup resolves categories by id and by display name.
type CategoryLookup interface {
	CategoryByID(id string) (models.Category, bool)
	CategoryByName(name string) (models.Category, bool)
}

// TagLookup resolves tags by id and by display name.
type TagLookup interface {
	TagByID(id string) (models.Tag, bool)
	TagByName(name string) (models.Tag, bool)
}

// Catalog is an in-memory CategoryLookup and TagLookup. Name lookups ignore
// case, matching the uniqueness rule of the store.
type Catalog struct {
	categories      map[string]models.Category
	categoriesByKey map[string]models.Category
	tags            map[string]models.Tag
	tagsByKey       map[string]models.Tag
}

// NewCatalog indexes the given categories and tags.
func NewCatalog(categories []models.Category, tags []models.Tag) *Catalog {
	c := &Catalog{
		categories:      make(map[string]models.Category, len(categories)),
		categoriesByKey: make(map[string]models.Category, len(categories)),
		tags:            make(map[string]models.Tag, len(tags)),
		tagsByKey:       make(map[string]models.Tag, len(tags)),
	}
	for _, cat := range categories {
		c.categories[cat.ID] = cat
		c.categoriesByKey[models.NameKey(cat.Name)] = cat
	}
	for _, tag := range tags {
		c.tags[tag.ID] = tag
		c.tagsByKey[models.NameKey(tag.Name)] = tag
	}
	return c
}

func (c *Catalog) CategoryByID(id string) (models.Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

func (c *Catalog) CategoryByName(name string) (models.Category, bool) {
	cat, ok := c.categoriesByKey[models.NameKey(name)]
	return cat, ok
}

func (c *Catalog) TagByID(id string) (models.Tag, bool) {
	tag, ok := c.tags[id]
	return tag, ok
}

func (c *Catalog) TagByName(name string) (models.Tag, bool) {
	tag, ok := c.tagsByKey[models.NameKey(name)]
	return tag, ok
}
