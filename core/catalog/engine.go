package catalog

import "sort"

// ComputeActiveSet returns the categories and themes that should be selectable in `mode`.
// Activation is driven by content: a theme is active when it owns a formation of the mode,
// whatever its own (or its category's) isOnline flag says. Input order is preserved.
func ComputeActiveSet(categories []Category, themes []Theme, formations []Formation, mode Mode) ActiveSet {
	activeThemeIDs := make(map[string]struct{})
	for _, f := range formations {
		if f.IsOnline == mode.IsOnline() {
			activeThemeIDs[f.ThemeID] = struct{}{}
		}
	}

	set := ActiveSet{Categories: []Category{}, Themes: []Theme{}}
	activeCategoryIDs := make(map[string]struct{})
	for _, t := range themes {
		if _, ok := activeThemeIDs[t.ID]; ok {
			set.Themes = append(set.Themes, t)
			activeCategoryIDs[t.CategoryID] = struct{}{}
		}
	}
	for _, c := range categories {
		if _, ok := activeCategoryIDs[c.ID]; ok {
			set.Categories = append(set.Categories, c)
		}
	}
	return set
}

// FilterAndSort returns the formations of `mode` matching the selection, sorted by its sort key.
// The category filter resolves themes against the full theme set (not the mode's active set),
// so online formations filed under themes flagged "standard" stay reachable.
// Formations whose theme does not exist are only visible without a hierarchy filter.
func FilterAndSort(formations []Formation, themes []Theme, sel Selection, mode Mode) []Formation {
	var keep func(Formation) bool
	switch sel.FilterState() {
	case ThemeFilter:
		keep = func(f Formation) bool { return f.ThemeID == sel.ThemeID }
	case CategoryFilter:
		themeIDs := make(map[string]struct{})
		for _, t := range themes {
			if t.CategoryID == sel.CategoryID {
				themeIDs[t.ID] = struct{}{}
			}
		}
		keep = func(f Formation) bool {
			_, ok := themeIDs[f.ThemeID]
			return ok
		}
	default:
		keep = func(Formation) bool { return true }
	}

	result := make([]Formation, 0, len(formations))
	for _, f := range formations {
		if f.IsOnline == mode.IsOnline() && keep(f) {
			result = append(result, f)
		}
	}

	key := sel.SortKey
	if !key.IsValid() {
		key = DefaultSortKey
	}
	desc := sel.Direction == Descending
	sort.SliceStable(result, func(i, j int) bool {
		a, b := key.value(result[i]), key.value(result[j])
		if desc {
			return a > b
		}
		return a < b
	})
	return result
}

// View composes the active set and the filtered formations of a catalog snapshot.
func View(cat Catalog, sel Selection, mode Mode) CatalogView {
	return CatalogView{
		Mode:        mode,
		Selection:   sel,
		FilterState: sel.FilterState(),
		ActiveSet:   ComputeActiveSet(cat.Categories, cat.Themes, cat.Formations, mode),
		Formations:  FilterAndSort(cat.Formations, cat.Themes, sel, mode),
	}
}
