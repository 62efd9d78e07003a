package echoapi

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/lead"
	"github.com/trezcool/institut/core/reservation"
)

var contactSentText = "Merci ! Votre message a bien été envoyé. Nous vous répondrons dans les plus brefs délais."

type leadApi struct {
	leadSvc    lead.Service
	validate   *validator.Validate
	translator ut.Translator
	now        func() time.Time
}

func registerLeadAPI(g, fg *echo.Group, deps ServerDeps) {
	api := leadApi{
		leadSvc:    deps.LeadSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
		now:        deps.Now,
	}

	fg.POST("/inquiries", api.inquire)
	fg.POST("/reservations", api.reserve)

	g.POST("/leads/contact", api.contact)
}

// newWizard opens the inquiry/reservation wizard of the context formation.
func (api *leadApi) newWizard(ctx echo.Context) (*reservation.Wizard, error) {
	f, err := getContextFormation(ctx)
	if err != nil {
		return nil, err
	}
	return reservation.NewWizard(
		reservation.OfferingFromFormation(f),
		api.now(),
		reservation.Deps{Writer: api.leadSvc, Validate: api.validate, Translator: api.translator},
	), nil
}

// Handlers

func (api *leadApi) inquire(ctx echo.Context) error {
	var data reservation.ContactForm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactForm")
	}
	w, err := api.newWizard(ctx)
	if err != nil {
		return err
	}

	w.Contact = data
	if err = w.SubmitInquiry(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, newWizardResponse(w))
}

// reserve runs both wizard steps at once; nothing is written unless both validate.
// An omitted numberOfPeople defaults to one participant.
func (api *leadApi) reserve(ctx echo.Context) error {
	data := ReservationRequest{Reservation: reservation.ReservationForm{NumberOfPeople: reservation.MinPeople}}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReservationRequest")
	}
	w, err := api.newWizard(ctx)
	if err != nil {
		return err
	}

	w.Contact = data.Contact
	if err = w.ProceedToReservation(); err != nil {
		return err
	}
	w.Reservation = data.Reservation
	if err = w.ConfirmReservation(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ReservationResponse{
		WizardResponse: newWizardResponse(w),
		Quote:          w.Quote(),
	})
}

// contact handles the generic contact form of the site.
func (api *leadApi) contact(ctx echo.Context) error {
	var data ContactRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactRequest")
	}

	var errs []core.FieldError
	if err := data.ContactForm.Validate(api.validate, api.translator); err != nil {
		vErr, ok := core.IsValidationError(err)
		if !ok {
			return err
		}
		errs = append(errs, vErr.Fields...)
	}
	data.Subject = core.CleanString(data.Subject)
	core.CheckVar(api.validate, api.translator, &errs, "subject", data.Subject, "omitempty,max=200")
	if len(errs) > 0 {
		return core.NewValidationError(nil, errs...)
	}

	l, err := api.leadSvc.Create(ctx.Request().Context(), lead.Lead{
		Type:     lead.TypeContactRequest,
		FullName: data.FullName,
		Email:    data.Email,
		Phone:    data.Phone,
		Subject:  data.Subject,
		Message:  data.Message,
	})
	if err != nil {
		return &reservation.SubmissionError{Err: err}
	}
	return ctx.JSON(http.StatusCreated, WizardResponse{
		Step:    reservation.StepSuccess,
		Message: contactSentText,
		LeadID:  l.ID,
	})
}
