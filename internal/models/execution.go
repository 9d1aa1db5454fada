package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExecutionStatus string

const (
	ExecutionStatusSucceeded ExecutionStatus = "succeeded"
	ExecutionStatusFallback  ExecutionStatus = "fallback"
)

// Execution is the append-only record of one prompt execution.
type Execution struct {
	ID               string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PromptTemplateID string          `gorm:"type:varchar(36);index;not null" json:"prompt_template_id"`
	Variables        JSON            `gorm:"type:text" json:"variables" swaggertype:"object"`
	Result           string          `gorm:"type:text" json:"result"`
	Status           ExecutionStatus `gorm:"size:20;index;not null" json:"status"`
	FallbackReason   string          `gorm:"size:32" json:"fallback_reason,omitempty"`
	Attempts         int             `json:"attempts"`
	ExecutedAt       time.Time       `gorm:"index" json:"executed_at"`
}

// TableName overrides the table name
func (Execution) TableName() string {
	return "prompt_executions"
}

func (e *Execution) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ExecutedAt.IsZero() {
		e.ExecutedAt = time.Now().UTC()
	}
	return nil
}
