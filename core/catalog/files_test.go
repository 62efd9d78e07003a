package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	want := Catalog{
		Categories: []Category{{ID: "c1", Name: "Digital", IsOnline: true}},
		Themes:     []Theme{{ID: "t1", Name: "SEO", CategoryID: "c1"}},
		Formations: []Formation{{
			ID: "f1", Name: "SEO 101", Code: "D-100", ThemeID: "t1", IsOnline: true,
			PricePerMonth: "50", DurationMonths: "6", PriceWithLodging: "1 200",
		}},
	}

	yamlDoc := `
categories:
  - {id: c1, name: Digital, isOnline: true}
themes:
  - {id: t1, name: SEO, categoryId: c1}
formations:
  - id: f1
    name: SEO 101
    formationId: D-100
    themeId: t1
    isOnline: true
    pricePerMonth: "50"
    durationMonths: "6"
    prixAvecHebergement: 1 200
`
	jsonDoc := `{
  "categories": [{"id": "c1", "name": "Digital", "isOnline": true}],
  "themes": [{"id": "t1", "name": "SEO", "categoryId": "c1"}],
  "formations": [{"id": "f1", "name": "SEO 101", "formationId": "D-100", "themeId": "t1", "isOnline": true,
    "pricePerMonth": "50", "durationMonths": "6", "prixAvecHebergement": "1 200"}]
}`

	tests := []struct {
		name    string
		format  string
		doc     string
		want    Catalog
		wantErr bool
	}{
		{name: "yaml", format: "yaml", doc: yamlDoc, want: want},
		{name: "yml", format: "YML", doc: yamlDoc, want: want},
		{name: "json", format: "json", doc: jsonDoc, want: want},
		{name: "empty", format: "yaml", doc: "", want: Catalog{}},
		{name: "unknown field", format: "json", doc: `{"courses": []}`, wantErr: true},
		{name: "unknown format", format: "csv", doc: "id,name", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.doc), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
