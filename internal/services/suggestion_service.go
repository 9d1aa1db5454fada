package services

import (
	"context"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/suggest"
)

// SuggestCategorization proposes a category and tags for unsaved template
// text. Without an installed suggester the keyword heuristic answers.
func SuggestCategorization(ctx context.Context, in suggest.Input) (suggest.Suggestion, error) {
	categories, err := DefaultStore.ListCategories(ctx)
	if err != nil {
		return suggest.Suggestion{}, err
	}
	tags, err := DefaultStore.ListTags(ctx)
	if err != nil {
		return suggest.Suggestion{}, err
	}

	if s := suggester(); s != nil {
		return s.Suggest(ctx, in, categories, tags), nil
	}
	return suggest.Heuristic(in, categories, tags), nil
}
