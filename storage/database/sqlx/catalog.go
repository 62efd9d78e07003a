package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/catalog"
)

const (
	queryCategories = `SELECT id, name, is_online FROM course_categories ORDER BY position`
	queryThemes     = `SELECT id, name, category_id FROM course_themes ORDER BY position`
	queryFormations = `SELECT id, name, code, theme_id, is_online, price_per_month, duration_months,
       price_with_lodging, price_without_lodging
FROM course_formations`

	insertCategory  = `INSERT INTO course_categories (id, name, is_online) VALUES ($1, $2, $3)`
	insertTheme     = `INSERT INTO course_themes (id, name, category_id) VALUES ($1, $2, $3)`
	insertFormation = `INSERT INTO course_formations (id, name, code, theme_id, is_online, price_per_month,
                               duration_months, price_with_lodging, price_without_lodging)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

// course_formations row; free-text prices may be NULL
type formationRow struct {
	ID                  string      `db:"id"`
	Name                string      `db:"name"`
	Code                string      `db:"code"`
	ThemeID             string      `db:"theme_id"`
	IsOnline            bool        `db:"is_online"`
	PricePerMonth       null.String `db:"price_per_month"`
	DurationMonths      null.String `db:"duration_months"`
	PriceWithLodging    null.String `db:"price_with_lodging"`
	PriceWithoutLodging null.String `db:"price_without_lodging"`
}

func (row formationRow) toFormation() catalog.Formation {
	return catalog.Formation{
		ID:                  row.ID,
		Name:                row.Name,
		Code:                row.Code,
		ThemeID:             row.ThemeID,
		IsOnline:            row.IsOnline,
		PricePerMonth:       row.PricePerMonth.String,
		DurationMonths:      row.DurationMonths.String,
		PriceWithLodging:    row.PriceWithLodging.String,
		PriceWithoutLodging: row.PriceWithoutLodging.String,
	}
}

func optString(s string) null.String {
	return null.NewString(s, s != "")
}

type catalogRepository struct {
	db core.DB
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db core.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) QueryCategories(ctx context.Context) ([]catalog.Category, error) {
	cats := make([]catalog.Category, 0)
	if err := repo.db.SelectContext(ctx, &cats, queryCategories); err != nil {
		return nil, errors.Wrap(err, "selecting categories")
	}
	return cats, nil
}

func (repo *catalogRepository) QueryThemes(ctx context.Context) ([]catalog.Theme, error) {
	themes := make([]catalog.Theme, 0)
	if err := repo.db.SelectContext(ctx, &themes, queryThemes); err != nil {
		return nil, errors.Wrap(err, "selecting themes")
	}
	return themes, nil
}

func (repo *catalogRepository) QueryFormations(ctx context.Context) ([]catalog.Formation, error) {
	var rows []formationRow
	if err := repo.db.SelectContext(ctx, &rows, queryFormations+" ORDER BY position"); err != nil {
		return nil, errors.Wrap(err, "selecting formations")
	}
	formations := make([]catalog.Formation, 0, len(rows))
	for _, row := range rows {
		formations = append(formations, row.toFormation())
	}
	return formations, nil
}

func (repo *catalogRepository) GetFormation(ctx context.Context, id string) (catalog.Formation, error) {
	var row formationRow
	err := repo.db.GetContext(ctx, &row, queryFormations+" WHERE id = $1", id)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return catalog.Formation{}, catalog.ErrFormationNotFound
		}
		return catalog.Formation{}, errors.Wrap(err, "getting formation")
	}
	return row.toFormation(), nil
}

// ReplaceCatalog deletes then re-inserts the three collections in one transaction.
// Insertion order is kept through the `position` column.
func (repo *catalogRepository) ReplaceCatalog(ctx context.Context, cat catalog.Catalog) (err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"course_formations", "course_themes", "course_categories"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrap(err, "clearing "+table)
		}
	}

	for _, c := range cat.Categories {
		if _, err = tx.ExecContext(ctx, insertCategory, c.ID, c.Name, c.IsOnline); err != nil {
			return errors.Wrapf(err, "inserting category %q", c.ID)
		}
	}
	for _, t := range cat.Themes {
		if _, err = tx.ExecContext(ctx, insertTheme, t.ID, t.Name, t.CategoryID); err != nil {
			return errors.Wrapf(err, "inserting theme %q", t.ID)
		}
	}
	for _, f := range cat.Formations {
		_, err = tx.ExecContext(
			ctx, insertFormation,
			f.ID, f.Name, f.Code, f.ThemeID, f.IsOnline,
			optString(f.PricePerMonth), optString(f.DurationMonths),
			optString(f.PriceWithLodging), optString(f.PriceWithoutLodging),
		)
		if err != nil {
			return errors.Wrapf(err, "inserting formation %q", f.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing catalog")
	}
	return nil
}
