package testutil

import (
	"context"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/lead"
	"github.com/trezcool/institut/core/reservation"
)

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

// NewValidator returns a validator with every custom validator and French translation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	reservation.InitValidators(validate, translator)
	return validate, translator
}

// SampleCatalog:
//   c1 Commerce (standard)        t1 Vente: f1 V-200, f2 V-100 | t2 Négociation: f3 N-100
//   c2 Digital (online)           t3 Marketing digital: f4 D-200 (online), f5 D-100 (online)
//   c3 Langues (no formation)     t5 Anglais
//   dangling theme t4 -> c9       f6 X-100
func SampleCatalog() catalog.Catalog {
	return catalog.Catalog{
		Categories: []catalog.Category{
			{ID: "c1", Name: "Commerce"},
			{ID: "c2", Name: "Digital", IsOnline: true},
			{ID: "c3", Name: "Langues"},
		},
		Themes: []catalog.Theme{
			{ID: "t1", Name: "Vente", CategoryID: "c1"},
			{ID: "t2", Name: "Négociation", CategoryID: "c1"},
			{ID: "t3", Name: "Marketing digital", CategoryID: "c2"},
			{ID: "t4", Name: "Divers", CategoryID: "c9"},
			{ID: "t5", Name: "Anglais", CategoryID: "c3"},
		},
		Formations: []catalog.Formation{
			{
				ID: "f1", Name: "Techniques de vente", Code: "V-200", ThemeID: "t1",
				PricePerMonth: "300", PriceWithLodging: "1 200", PriceWithoutLodging: "900",
			},
			{ID: "f2", Name: "Prospection", Code: "V-100", ThemeID: "t1"},
			{ID: "f3", Name: "Négocier", Code: "N-100", ThemeID: "t2", PriceWithoutLodging: "sur devis"},
			{
				ID: "f4", Name: "SEO", Code: "D-200", ThemeID: "t3", IsOnline: true,
				PricePerMonth: "50", DurationMonths: "6",
			},
			{ID: "f5", Name: "Réseaux sociaux", Code: "D-100", ThemeID: "t3", IsOnline: true, PricePerMonth: "49,50"},
			{ID: "f6", Name: "Atelier libre", Code: "X-100", ThemeID: "t4"},
		},
	}
}

func SeedCatalog(t *testing.T, repo catalog.Repository, cat catalog.Catalog) {
	t.Helper()
	if err := repo.ReplaceCatalog(context.Background(), cat); err != nil {
		t.Fatalf("SeedCatalog() failed: %v", err)
	}
}

func CreateLead(t *testing.T, repo lead.Repository, l lead.Lead) lead.Lead {
	t.Helper()
	l, err := repo.AppendLead(context.Background(), l)
	if err != nil {
		t.Fatalf("CreateLead() failed: %v", err)
	}
	return l
}
