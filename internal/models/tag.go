package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is referenced by templates through their tag id list.
type Tag struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string `gorm:"size:50;not null" json:"name"`
	NameKey     string `gorm:"size:50;uniqueIndex;not null" json:"-"`
	Description string `gorm:"size:500" json:"description"`
	Color       string `gorm:"size:20;not null;default:'#3B82F6'" json:"color"`
}

// TableName overrides the table name
func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Color == "" {
		t.Color = DefaultColor
	}
	return nil
}

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.NameKey = NameKey(t.Name)
	return nil
}
