package tests

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/institut/apps/api/echo"
	"github.com/trezcool/institut/core/lead"
	"github.com/trezcool/institut/core/reservation"
	"github.com/trezcool/institut/services/email"
	"github.com/trezcool/institut/storage/database/inmem"
)

var (
	validContact = reservation.ContactForm{
		FullName: "Awa Diop",
		Email:    "awa@example.com",
		Phone:    "+221 77 123 45 67",
		Message:  "Bonjour, je souhaite m'inscrire.",
	}
	validReservation = reservation.ReservationForm{
		StartDate:      "2024-04-01",
		NumberOfPeople: 3,
		Country:        "Sénégal",
	}
	errSubmission = httpErr{Error: "votre demande n'a pas pu être enregistrée, veuillez réessayer"}
)

func storedLeads(t *testing.T, app testApp) []lead.Lead {
	leads, err := app.leadRepo.QueryLeads(context.Background(), lead.QueryFilter{})
	require.NoError(t, err)
	return leads
}

func Test_leadApi_inquire(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app := setup(t)

		rec := app.do(http.MethodPost, "/v1/formations/f1/inquiries", marshallObj(t, validContact))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp WizardResponse
		unmarshall(t, rec, &resp)
		assert.Equal(t, reservation.StepSuccess, resp.Step)
		assert.Equal(t, reservation.OutcomeInquiry, resp.Outcome)
		assert.NotEmpty(t, resp.Message)

		leads := storedLeads(t, app)
		require.Len(t, leads, 1)
		l := leads[0]
		assert.Equal(t, resp.LeadID, l.ID)
		assert.Equal(t, lead.TypeCourseInquiry, l.Type)
		assert.Equal(t, "Awa Diop", l.FullName)
		assert.Equal(t, "f1", l.FormationID)
		assert.Equal(t, "V-200", l.FormationCode)
		assert.Equal(t, "Techniques de vente", l.FormationName)
		assert.Nil(t, l.TotalPrice)

		assert.Len(t, emailsvc.SentMessages(), 2)
	})

	app := setup(t)
	tests := []httpTest{
		{
			name: "empty form", body: []byte(`{}`), path: "/v1/formations/f4/inquiries", wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"fullName": "ce champ est obligatoire",
				"email":    "ce champ est obligatoire",
			}),
		},
		{
			name: "invalid email", body: []byte(`{"fullName": "Awa", "email": "awa@"}`), path: "/v1/formations/f4/inquiries",
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, map[string]string{"email": "adresse e-mail invalide"}),
		},
		{
			name: "unknown formation", body: marshallObj(t, validContact), path: "/v1/formations/nope/inquiries",
			wantCode: http.StatusNotFound, wantData: marshallObj(t, errNotFound),
		},
		{name: "malformed body", body: []byte(`{"fullName": `), path: "/v1/formations/f4/inquiries", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(http.MethodPost, tt.path, tt.body))
		})
	}
	assert.Empty(t, storedLeads(t, app))
}

func Test_leadApi_reserve(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app := setup(t)

		body := marshallObj(t, ReservationRequest{Contact: validContact, Reservation: validReservation})
		rec := app.do(http.MethodPost, "/v1/formations/f4/reservations", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp ReservationResponse
		unmarshall(t, rec, &resp)
		assert.Equal(t, reservation.StepSuccess, resp.Step)
		assert.Equal(t, reservation.OutcomeReservation, resp.Outcome)
		assert.Equal(t, 900.0, resp.Quote.GrandTotal.Value)

		leads := storedLeads(t, app)
		require.Len(t, leads, 1)
		l := leads[0]
		assert.Equal(t, lead.TypeOnlineReservation, l.Type)
		assert.Equal(t, "awa@example.com", l.Email)
		assert.Equal(t, 3, l.NumberOfPeople)
		assert.Equal(t, "Sénégal", l.Country)
		require.NotNil(t, l.StartDate)
		assert.Equal(t, "2024-04-01", l.StartDate.Format("2006-01-02"))
		require.NotNil(t, l.TotalPrice)
		assert.Equal(t, 900.0, *l.TotalPrice)
	})

	t.Run("numberOfPeople omitted", func(t *testing.T) {
		app := setup(t)

		body := marshallObj(t, map[string]interface{}{
			"contact":     validContact,
			"reservation": map[string]string{"startDate": "2024-04-01", "country": "Sénégal"},
		})
		rec := app.do(http.MethodPost, "/v1/formations/f4/reservations", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp ReservationResponse
		unmarshall(t, rec, &resp)
		assert.Equal(t, 1, resp.Quote.Participants)
		assert.Equal(t, 300.0, resp.Quote.GrandTotal.Value)

		leads := storedLeads(t, app)
		require.Len(t, leads, 1)
		assert.Equal(t, 1, leads[0].NumberOfPeople)
	})

	app := setup(t)
	withReservation := func(rf reservation.ReservationForm) []byte {
		return marshallObj(t, ReservationRequest{Contact: validContact, Reservation: rf})
	}
	tests := []httpTest{
		{
			name: "in-person formation", path: "/v1/formations/f1/reservations",
			body: withReservation(validReservation), wantCode: http.StatusForbidden,
			wantData: marshallObj(t, httpErr{Error: "la réservation en ligne n'est pas disponible pour cette formation"}),
		},
		{
			name: "invalid contact", path: "/v1/formations/f4/reservations",
			body:     marshallObj(t, ReservationRequest{Reservation: validReservation}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"fullName": "ce champ est obligatoire",
				"email":    "ce champ est obligatoire",
			}),
		},
		{
			name: "misspelled country", path: "/v1/formations/f4/reservations",
			body:     withReservation(reservation.ReservationForm{StartDate: "2024-05-01", NumberOfPeople: 1, Country: "senegal"}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"country": "pays non pris en charge (vouliez-vous dire « Sénégal » ?)"}),
		},
		{
			name: "start date not offered", path: "/v1/formations/f4/reservations",
			body:     withReservation(reservation.ReservationForm{StartDate: "2024-03-01", NumberOfPeople: 21, Country: "Mali"}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"startDate":      "date de début indisponible",
				"numberOfPeople": "le nombre de participants doit être compris entre 1 et 20",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(http.MethodPost, tt.path, tt.body))
		})
	}
	assert.Empty(t, storedLeads(t, app))
}

func Test_leadApi_submissionFailure(t *testing.T) {
	db := inmemdb.Open()
	app := setupWith(t, inmemdb.NewCatalogRepository(db), failingLeadRepo{})

	tests := []httpTest{
		{name: "inquiry", path: "/v1/formations/f1/inquiries", body: marshallObj(t, validContact)},
		{
			name: "reservation", path: "/v1/formations/f4/reservations",
			body: marshallObj(t, ReservationRequest{Contact: validContact, Reservation: validReservation}),
		},
		{name: "contact", path: "/v1/leads/contact", body: marshallObj(t, validContact)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wantCode = http.StatusServiceUnavailable
			tt.wantData = marshallObj(t, errSubmission)
			checkCodeAndData(t, tt, app.do(http.MethodPost, tt.path, tt.body))
		})
	}
	assert.Empty(t, emailsvc.SentMessages())
}

func Test_leadApi_contact(t *testing.T) {
	app := setup(t)

	body := marshallObj(t, ContactRequest{ContactForm: validContact, Subject: "  Demande de devis "})
	rec := app.do(http.MethodPost, "/v1/leads/contact", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp WizardResponse
	unmarshall(t, rec, &resp)
	assert.Equal(t, reservation.StepSuccess, resp.Step)

	leads := storedLeads(t, app)
	require.Len(t, leads, 1)
	assert.Equal(t, lead.TypeContactRequest, leads[0].Type)
	assert.Equal(t, "Demande de devis", leads[0].Subject)
	assert.Empty(t, leads[0].FormationID)

	sent := emailsvc.SentMessages()
	require.Len(t, sent, 2)
	assert.Equal(t, "Nouvelle demande : Contact Request", sent[0].Subject)
	assert.Equal(t, conf.LeadRecipients, sent[0].To)

	rec = app.do(http.MethodPost, "/v1/leads/contact", marshallObj(t, ContactRequest{
		ContactForm: reservation.ContactForm{FullName: "A"},
		Subject:     strings.Repeat("x", 201),
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var fldErrs map[string]string
	unmarshall(t, rec, &fldErrs)
	assert.Contains(t, fldErrs, "email")
	assert.Contains(t, fldErrs, "subject")
	assert.Len(t, storedLeads(t, app), 1)
}
