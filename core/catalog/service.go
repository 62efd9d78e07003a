package catalog

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrFormationNotFound = errors.New("formation not found")
)

type (
	// Repository reads the catalog collections (course_categories, course_themes, course_formations).
	// Collections are returned fully materialised; ordering is the store's.
	Repository interface {
		QueryCategories(ctx context.Context) ([]Category, error)
		QueryThemes(ctx context.Context) ([]Theme, error)
		QueryFormations(ctx context.Context) ([]Formation, error)
		GetFormation(ctx context.Context, id string) (Formation, error)
		// ReplaceCatalog atomically replaces the three collections.
		ReplaceCatalog(ctx context.Context, cat Catalog) error
	}

	Service interface {
		Load(ctx context.Context) (Catalog, error)
		View(ctx context.Context, mode Mode, query url.Values) (CatalogView, error)
		GetFormation(ctx context.Context, id string) (Formation, error)
		Import(ctx context.Context, cat Catalog) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Load(ctx context.Context) (Catalog, error) {
	var (
		cat Catalog
		err error
	)
	if cat.Categories, err = svc.repo.QueryCategories(ctx); err != nil {
		return Catalog{}, errors.Wrap(err, "querying categories")
	}
	if cat.Themes, err = svc.repo.QueryThemes(ctx); err != nil {
		return Catalog{}, errors.Wrap(err, "querying themes")
	}
	if cat.Formations, err = svc.repo.QueryFormations(ctx); err != nil {
		return Catalog{}, errors.Wrap(err, "querying formations")
	}
	return cat, nil
}

// View loads a fresh snapshot and renders it for `mode`, with the selection read from `query`.
func (svc *service) View(ctx context.Context, mode Mode, query url.Values) (CatalogView, error) {
	cat, err := svc.Load(ctx)
	if err != nil {
		return CatalogView{}, err
	}
	active := ComputeActiveSet(cat.Categories, cat.Themes, cat.Formations, mode)
	sel := HydrateSelection(query, active)
	return CatalogView{
		Mode:        mode,
		Selection:   sel,
		FilterState: sel.FilterState(),
		ActiveSet:   active,
		Formations:  FilterAndSort(cat.Formations, cat.Themes, sel, mode),
	}, nil
}

func (svc *service) GetFormation(ctx context.Context, id string) (Formation, error) {
	return svc.repo.GetFormation(ctx, id)
}

// Import replaces the whole catalog. The catalog must have been validated.
func (svc *service) Import(ctx context.Context, cat Catalog) error {
	if err := svc.repo.ReplaceCatalog(ctx, cat); err != nil {
		return errors.Wrap(err, "replacing catalog")
	}
	return nil
}
