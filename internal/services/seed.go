package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

func strPtr(s string) *string { return &s }

var seedCategories = []models.Category{
	{ID: "cat-web", Name: "Web Development", Description: "Prompts for coding, code review and web frameworks", Color: "#3B82F6"},
	{ID: "cat-content", Name: "Content Creation", Description: "Prompts for blog posts, articles and marketing writing", Color: "#10B981"},
}

var seedTags = []models.Tag{
	{ID: "tag-zero-shot", Name: "Zero-Shot", Description: "Direct instruction with no examples", Color: "#3B82F6"},
	{ID: "tag-few-shot", Name: "Few-Shot", Description: "Instruction followed by worked examples", Color: "#10B981"},
	{ID: "tag-chain-of-thought", Name: "Chain of Thought", Description: "Asks the model to reason step by step", Color: "#F59E0B"},
	{ID: "tag-zero-shot-cot", Name: "Zero-Shot CoT", Description: "Zero-shot instruction plus a step by step cue", Color: "#8B5CF6"},
}

var seedTemplates = []models.PromptTemplate{
	{
		ID:          "sample-code-review",
		Name:        "Code Review Assistant",
		Description: "Reviews a code snippet for quality, bugs and style",
		Content: "You are an experienced {{language}} developer. Review the following code and point out bugs, " +
			"readability problems and possible improvements.\n\n{{code}}",
		Variables: []models.Variable{
			{Name: "language", Description: "Programming language of the snippet", Type: models.VariableTypeString, Required: true},
			{Name: "code", Description: "The code to review", Type: models.VariableTypeString, Required: true},
		},
		CategoryID: strPtr("cat-web"),
		TagIDs:     []string{"tag-zero-shot"},
	},
	{
		ID:          "sample-blog-post",
		Name:        "Blog Post Generator",
		Description: "Drafts a structured blog post",
		Content: "Write a {{word_count}} word blog post about {{topic}} for a {{audience}} audience. " +
			"Use a {{tone}} tone and organize it into {{sections}} sections.",
		Variables: []models.Variable{
			{Name: "topic", Description: "Subject of the post", Type: models.VariableTypeString, Required: true},
			{Name: "word_count", Description: "Approximate length in words", Type: models.VariableTypeNumber, Required: true, DefaultValue: "800"},
			{Name: "audience", Description: "Intended readers", Type: models.VariableTypeString, Required: true, DefaultValue: "General"},
			{Name: "tone", Description: "Writing tone", Type: models.VariableTypeString, DefaultValue: "Professional"},
			{Name: "sections", Description: "Number of sections", Type: models.VariableTypeNumber, DefaultValue: "3"},
		},
		CategoryID: strPtr("cat-content"),
		TagIDs:     []string{"tag-few-shot", "tag-chain-of-thought"},
	},
}

// Seed inserts the sample catalog and templates. Rows that already exist are
// left alone, so it is safe to run on every start.
func Seed(ctx context.Context) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{DoNothing: true})
		for i := range seedCategories {
			c := seedCategories[i]
			if err := insert.Create(&c).Error; err != nil {
				return err
			}
		}
		for i := range seedTags {
			t := seedTags[i]
			if err := insert.Create(&t).Error; err != nil {
				return err
			}
		}
		for i := range seedTemplates {
			p := seedTemplates[i]
			if err := insert.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cacheDel(ctx, CategoriesCacheKey, TagsCacheKey)
	logger.Log.Info("Seed data ensured",
		zap.Int("categories", len(seedCategories)),
		zap.Int("tags", len(seedTags)),
		zap.Int("templates", len(seedTemplates)),
	)
	return nil
}
