package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

const DefaultColor = "#3B82F6"

// Category groups templates. Names are unique ignoring case.
type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	NameKey     string    `gorm:"size:100;uniqueIndex;not null" json:"-"`
	Description string    `json:"description"`
	Color       string    `gorm:"size:20;not null;default:'#3B82F6'" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	return nil
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.NameKey = NameKey(c.Name)
	return nil
}

// NameKey folds a display name into the form used for case-insensitive
// uniqueness and lookups.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
