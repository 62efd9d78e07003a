package catalog

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/institut/core"
)

var duplicateIDText = "identifiant en double"

// Clean trims every text field and gives an id to records that have none.
func (cat *Catalog) Clean() {
	for i := range cat.Categories {
		c := &cat.Categories[i]
		c.ID = cleanID(c.ID)
		c.Name = core.CleanString(c.Name)
	}
	for i := range cat.Themes {
		t := &cat.Themes[i]
		t.ID = cleanID(t.ID)
		t.Name = core.CleanString(t.Name)
		t.CategoryID = core.CleanString(t.CategoryID)
	}
	for i := range cat.Formations {
		f := &cat.Formations[i]
		f.ID = cleanID(f.ID)
		f.Name = core.CleanString(f.Name)
		f.Code = core.CleanString(f.Code)
		f.ThemeID = core.CleanString(f.ThemeID)
		f.PricePerMonth = core.CleanString(f.PricePerMonth)
		f.DurationMonths = core.CleanString(f.DurationMonths)
		f.PriceWithLodging = core.CleanString(f.PriceWithLodging)
		f.PriceWithoutLodging = core.CleanString(f.PriceWithoutLodging)
	}
}

func cleanID(id string) string {
	if id = core.CleanString(id); id == "" {
		return uuid.New().String()
	}
	return id
}

// Validate checks names are set and ids are unique within each collection.
// Parent references are not checked: dangling themeId/categoryId are tolerated.
func (cat *Catalog) Validate(validate *validator.Validate, translator ut.Translator) error {
	cat.Clean()

	var errs []core.FieldError
	checkIDs := func(collection string, ids []string) {
		seen := make(map[string]struct{}, len(ids))
		for i, id := range ids {
			if _, ok := seen[id]; ok {
				errs = append(errs, core.FieldError{Field: fmt.Sprintf("%s[%d].id", collection, i), Error: duplicateIDText})
			}
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(cat.Categories))
	for i, c := range cat.Categories {
		ids = append(ids, c.ID)
		core.CheckVar(validate, translator, &errs, fmt.Sprintf("categories[%d].name", i), c.Name, "required")
	}
	checkIDs("categories", ids)

	ids = make([]string, 0, len(cat.Themes))
	for i, t := range cat.Themes {
		ids = append(ids, t.ID)
		core.CheckVar(validate, translator, &errs, fmt.Sprintf("themes[%d].name", i), t.Name, "required")
	}
	checkIDs("themes", ids)

	ids = make([]string, 0, len(cat.Formations))
	for i, f := range cat.Formations {
		ids = append(ids, f.ID)
		core.CheckVar(validate, translator, &errs, fmt.Sprintf("formations[%d].name", i), f.Name, "required")
	}
	checkIDs("formations", ids)

	if len(errs) > 0 {
		return core.NewValidationError(nil, errs...)
	}
	return nil
}
