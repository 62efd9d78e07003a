package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/reservation"
)

var (
	participantsParam = "participants"
	participantsText  = "nombre de participants invalide"
)

// participantsQuery reads `?participants=`, 1 when missing.
type participantsQuery struct {
	Participants int
}

func (q *participantsQuery) Bind(ctx echo.Context) error {
	q.Participants = reservation.MinPeople
	err := echo.QueryParamsBinder(ctx).Int(participantsParam, &q.Participants).BindError()
	if err != nil || q.Participants < reservation.MinPeople || q.Participants > reservation.MaxPeople {
		return core.NewValidationError(nil, core.FieldError{Field: participantsParam, Error: participantsText})
	}
	return nil
}

type (
	ReservationRequest struct {
		Contact     reservation.ContactForm     `json:"contact"`
		Reservation reservation.ReservationForm `json:"reservation"`
	}

	ContactRequest struct {
		reservation.ContactForm
		Subject string `json:"subject"`
	}

	WizardResponse struct {
		Step    reservation.Step    `json:"step"`
		Outcome reservation.Outcome `json:"outcome"`
		Message string              `json:"message"`
		LeadID  string              `json:"leadId"`
	}

	ReservationResponse struct {
		WizardResponse
		Quote reservation.Quote `json:"quote"`
	}

	InPersonQuote struct {
		Participants   int               `json:"participants"`
		WithLodging    reservation.Price `json:"withLodging"`
		WithoutLodging reservation.Price `json:"withoutLodging"`
	}
)

func newWizardResponse(w *reservation.Wizard) WizardResponse {
	l, _ := w.Lead()
	return WizardResponse{
		Step:    w.Step(),
		Outcome: w.Outcome(),
		Message: w.SuccessMessage(),
		LeadID:  l.ID,
	}
}
