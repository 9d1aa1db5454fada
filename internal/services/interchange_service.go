package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/interchange"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

// LoadCatalog reads categories and tags concurrently.
func LoadCatalog(ctx context.Context, store Store) (*interchange.Catalog, error) {
	var categories []models.Category
	var tags []models.Tag

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = store.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = store.ListTags(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return interchange.NewCatalog(categories, tags), nil
}

// ExportPromptTemplate renders a stored template as interchange YAML. The
// template is returned too so callers can name the download.
func ExportPromptTemplate(ctx context.Context, id string) (string, *models.PromptTemplate, error) {
	template, err := DefaultStore.GetTemplate(ctx, id)
	if err != nil {
		return "", nil, err
	}
	catalog, err := LoadCatalog(ctx, DefaultStore)
	if err != nil {
		return "", nil, err
	}
	text, err := interchange.Export(template, catalog, catalog)
	if err != nil {
		return "", nil, err
	}
	return text, template, nil
}

// ImportPromptTemplate parses interchange YAML and stores the result as a new
// template.
func ImportPromptTemplate(ctx context.Context, text string) (*models.PromptTemplate, error) {
	catalog, err := LoadCatalog(ctx, DefaultStore)
	if err != nil {
		return nil, err
	}
	draft, err := interchange.Import(text, catalog, catalog)
	if err != nil {
		return nil, err
	}
	return CreatePromptTemplate(ctx, *draft)
}
