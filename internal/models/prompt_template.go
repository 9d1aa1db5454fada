package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PromptTemplate is the unit of authoring: content plus its variable schema,
// an optional category and a set of tag references.
type PromptTemplate struct {
	ID          string                        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string                        `gorm:"size:200;index;not null" json:"name"`
	Description string                        `json:"description"`
	Content     string                        `gorm:"type:text;not null" json:"content"`
	Variables   datatypes.JSONSlice[Variable] `json:"variables" swaggertype:"array,object"`
	CategoryID  *string                       `gorm:"type:varchar(36);index" json:"category_id"`
	TagIDs      datatypes.JSONSlice[string]   `gorm:"column:tag_ids" json:"tag_ids" swaggertype:"array,string"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// TableName overrides the table name
func (PromptTemplate) TableName() string {
	return "prompt_templates"
}

// BeforeCreate assigns a fresh id to templates created without one.
func (p *PromptTemplate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// VariableList returns the variables as a plain slice.
func (p *PromptTemplate) VariableList() []Variable {
	return []Variable(p.Variables)
}

// TemplateDraft carries the user-editable fields of a template before it is
// persisted. Imports and create requests both produce one.
type TemplateDraft struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	CategoryID  *string    `json:"category_id"`
	TagIDs      []string   `json:"tag_ids"`
	Variables   []Variable `json:"variables"`
}

// DedupeIDs drops empty and repeated ids while keeping first-seen order.
func DedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
