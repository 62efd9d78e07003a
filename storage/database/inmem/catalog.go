package inmemdb

import (
	"context"

	"github.com/trezcool/institut/core/catalog"
)

type catalogRepository struct {
	db *catalogTable
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db.catalog}
}

func (repo *catalogRepository) QueryCategories(context.Context) ([]catalog.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]catalog.Category, 0, len(repo.db.snapshot.Categories)), repo.db.snapshot.Categories...), nil
}

func (repo *catalogRepository) QueryThemes(context.Context) ([]catalog.Theme, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]catalog.Theme, 0, len(repo.db.snapshot.Themes)), repo.db.snapshot.Themes...), nil
}

func (repo *catalogRepository) QueryFormations(context.Context) ([]catalog.Formation, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]catalog.Formation, 0, len(repo.db.snapshot.Formations)), repo.db.snapshot.Formations...), nil
}

func (repo *catalogRepository) GetFormation(_ context.Context, id string) (catalog.Formation, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, f := range repo.db.snapshot.Formations {
		if f.ID == id {
			return f, nil
		}
	}
	return catalog.Formation{}, catalog.ErrFormationNotFound
}

func (repo *catalogRepository) ReplaceCatalog(_ context.Context, cat catalog.Catalog) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.snapshot = catalog.Catalog{
		Categories: append([]catalog.Category(nil), cat.Categories...),
		Themes:     append([]catalog.Theme(nil), cat.Themes...),
		Formations: append([]catalog.Formation(nil), cat.Formations...),
	}
	return nil
}
