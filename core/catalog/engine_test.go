package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(formations []Formation) []string {
	res := make([]string, 0, len(formations))
	for _, f := range formations {
		res = append(res, f.ID)
	}
	return res
}

func sampleCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{ID: "c1", Name: "Business", IsOnline: false},
			{ID: "c2", Name: "Informatique", IsOnline: true},
			{ID: "c3", Name: "Santé"},
		},
		Themes: []Theme{
			{ID: "t1", Name: "Mktg", CategoryID: "c1"},
			{ID: "t2", Name: "Compta", CategoryID: "c1"},
			{ID: "t3", Name: "Réseaux", CategoryID: "c2"},
			{ID: "t4", Name: "Orphan", CategoryID: "missing"},
			{ID: "t5", Name: "Empty", CategoryID: "c3"},
		},
		Formations: []Formation{
			{ID: "f1", Name: "Digital", Code: "D-100", ThemeID: "t1", IsOnline: true},
			{ID: "f2", Name: "Vente", Code: "V-200", ThemeID: "t1"},
			{ID: "f3", Name: "Audit", Code: "A-300", ThemeID: "t2"},
			{ID: "f4", Name: "Cisco", Code: "C-400", ThemeID: "t3", IsOnline: true},
			{ID: "f5", Name: "Linux", Code: "L-500", ThemeID: "t3", IsOnline: true},
			{ID: "f6", Name: "Lost", Code: "X-600", ThemeID: "gone"},
			{ID: "f7", Name: "Stray", Code: "S-700", ThemeID: "t4", IsOnline: true},
		},
	}
}

func TestComputeActiveSet(t *testing.T) {
	cat := sampleCatalog()

	tests := []struct {
		name           string
		mode           Mode
		wantThemes     []string
		wantCategories []string
	}{
		{name: "standard", mode: ModeStandard, wantThemes: []string{"t1", "t2"}, wantCategories: []string{"c1"}},
		// t1 has no online flag anywhere but owns the online f1
		{name: "online (content-driven)", mode: ModeOnline, wantThemes: []string{"t1", "t3", "t4"}, wantCategories: []string{"c1", "c2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ComputeActiveSet(cat.Categories, cat.Themes, cat.Formations, tt.mode)

			gotThemes := make([]string, 0, len(set.Themes))
			for _, th := range set.Themes {
				gotThemes = append(gotThemes, th.ID)
			}
			gotCats := make([]string, 0, len(set.Categories))
			for _, c := range set.Categories {
				gotCats = append(gotCats, c.ID)
			}
			assert.Equal(t, tt.wantThemes, gotThemes)
			assert.Equal(t, tt.wantCategories, gotCats)
		})
	}
}

func TestComputeActiveSet_Empty(t *testing.T) {
	set := ComputeActiveSet(nil, nil, nil, ModeOnline)
	assert.Empty(t, set.Categories)
	assert.Empty(t, set.Themes)
}

func TestComputeActiveSet_EveryModeFormationReachable(t *testing.T) {
	cat := sampleCatalog()
	for _, mode := range []Mode{ModeStandard, ModeOnline} {
		set := ComputeActiveSet(cat.Categories, cat.Themes, cat.Formations, mode)
		for _, f := range cat.Formations {
			if f.IsOnline != mode.IsOnline() {
				continue
			}
			var themeExists bool
			for _, th := range cat.Themes {
				if th.ID == f.ThemeID {
					themeExists = true
				}
			}
			if !themeExists {
				continue // dangling reference, no path possible
			}
			_, ok := set.Theme(f.ThemeID)
			assert.Truef(t, ok, "%s: theme %s of %s not active", mode, f.ThemeID, f.ID)
		}
	}
}

func TestFilterAndSort_ModePartition(t *testing.T) {
	cat := sampleCatalog()
	sel := DefaultSelection()

	standard := FilterAndSort(cat.Formations, cat.Themes, sel, ModeStandard)
	online := FilterAndSort(cat.Formations, cat.Themes, sel, ModeOnline)

	seen := make(map[string]int)
	for _, f := range append(standard, online...) {
		seen[f.ID]++
	}
	assert.Len(t, seen, len(cat.Formations))
	for id, n := range seen {
		assert.Equalf(t, 1, n, "%s found in both modes", id)
	}
}

func TestFilterAndSort(t *testing.T) {
	cat := sampleCatalog()

	tests := []struct {
		name string
		sel  Selection
		mode Mode
		want []string
	}{
		{name: "standard, no filter", sel: DefaultSelection(), mode: ModeStandard, want: []string{"f3", "f2", "f6"}},
		{name: "online, no filter", sel: DefaultSelection(), mode: ModeOnline, want: []string{"f4", "f1", "f5", "f7"}},
		{
			name: "online, category of a standard theme", mode: ModeOnline,
			sel:  SelectCategory(DefaultSelection(), "c1"), want: []string{"f1"},
		},
		{
			name: "standard, category", mode: ModeStandard,
			sel:  SelectCategory(DefaultSelection(), "c1"), want: []string{"f3", "f2"},
		},
		{
			name: "online, theme", mode: ModeOnline,
			sel:  SelectTheme(DefaultSelection(), "t3", cat.Themes), want: []string{"f4", "f5"},
		},
		{
			name: "dangling theme excluded from category filter", mode: ModeStandard,
			sel:  SelectCategory(DefaultSelection(), "c2"), want: []string{},
		},
		{
			name: "name descending", mode: ModeOnline,
			sel:  Selection{SortKey: SortByName, Direction: Descending}, want: []string{"f7", "f5", "f1", "f4"},
		},
		{
			name: "invalid sort key falls back to code", mode: ModeStandard,
			sel:  Selection{SortKey: "price"}, want: []string{"f3", "f2", "f6"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(cat.Formations, cat.Themes, tt.sel, tt.mode)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAndSort_Stable(t *testing.T) {
	formations := []Formation{
		{ID: "1", Name: "b", Code: "X"},
		{ID: "2", Name: "a", Code: "X"},
		{ID: "3", Name: "B", Code: ""},
		{ID: "4", Name: "a", Code: "X"},
		{ID: "5", Name: "", Code: "A"},
	}

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		// missing values compare as "" and case matters ("B" < "a")
		{name: "code asc", sel: Selection{SortKey: SortByCode, Direction: Ascending}, want: []string{"3", "5", "1", "2", "4"}},
		{name: "code desc", sel: Selection{SortKey: SortByCode, Direction: Descending}, want: []string{"1", "2", "4", "5", "3"}},
		{name: "name asc", sel: Selection{SortKey: SortByName, Direction: Ascending}, want: []string{"5", "3", "2", "4", "1"}},
		{name: "name desc", sel: Selection{SortKey: SortByName, Direction: Descending}, want: []string{"1", "2", "4", "3", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(formations, nil, tt.sel, ModeStandard)
			assert.Equal(t, tt.want, ids(got))
		})
	}
	// input untouched
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(formations))
}

func TestScenarios(t *testing.T) {
	categories := []Category{{ID: "c1", Name: "Business", IsOnline: false}}
	themes := []Theme{{ID: "t1", CategoryID: "c1", Name: "Mktg"}}
	formations := []Formation{{ID: "f1", ThemeID: "t1", IsOnline: true, Name: "Digital", Code: "D-100"}}

	t.Run("A: online", func(t *testing.T) {
		set := ComputeActiveSet(categories, themes, formations, ModeOnline)
		assert.Equal(t, themes, set.Themes)
		assert.Equal(t, categories, set.Categories)
		assert.Equal(t, []string{"f1"}, ids(FilterAndSort(formations, themes, DefaultSelection(), ModeOnline)))
	})
	t.Run("B: standard", func(t *testing.T) {
		assert.Empty(t, FilterAndSort(formations, themes, DefaultSelection(), ModeStandard))
	})
}

func TestView(t *testing.T) {
	cat := sampleCatalog()
	view := View(cat, SelectCategory(DefaultSelection(), "c2"), ModeOnline)

	assert.Equal(t, ModeOnline, view.Mode)
	assert.Equal(t, CategoryFilter, view.FilterState)
	assert.Equal(t, []string{"f4", "f5"}, ids(view.Formations))
	assert.Len(t, view.Themes, 3)
}
