package prompt

import "github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"

type CreatePromptRequest struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Description string            `json:"description"`
	Content     string            `json:"content" binding:"required"`
	CategoryID  *string           `json:"category_id"`
	TagIDs      []string          `json:"tag_ids"`
	Variables   []models.Variable `json:"variables"`
}

// UpdatePromptRequest changes only the fields present. An empty category_id
// clears the category.
type UpdatePromptRequest struct {
	Name        *string            `json:"name" binding:"omitempty,max=200"`
	Description *string            `json:"description"`
	Content     *string            `json:"content"`
	CategoryID  *string            `json:"category_id"`
	TagIDs      *[]string          `json:"tag_ids"`
	Variables   *[]models.Variable `json:"variables"`
}

type PromptListResponse struct {
	Total int64                   `json:"total"`
	Items []models.PromptTemplate `json:"items"`
}

type ExecutePromptRequest struct {
	PromptID  string         `json:"prompt_id" binding:"required"`
	Variables map[string]any `json:"variables"`
}

type ImportPromptRequest struct {
	YAML string `json:"yaml" binding:"required"`
}

type ReconcileRequest struct {
	Content   string            `json:"content"`
	Variables []models.Variable `json:"variables"`
}

type RenameVariableRequest struct {
	Content   string            `json:"content"`
	Variables []models.Variable `json:"variables"`
	OldName   string            `json:"old_name" binding:"required"`
	NewName   string            `json:"new_name" binding:"required"`
}

type RemoveVariableRequest struct {
	Content   string            `json:"content"`
	Variables []models.Variable `json:"variables"`
	Name      string            `json:"name" binding:"required"`
}

type SuggestRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content" binding:"required"`
}
