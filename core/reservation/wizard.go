package reservation

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/lead"
)

type Step string

const (
	StepContact     Step = "contact"
	StepReservation Step = "reservation"
	StepSuccess     Step = "success"
)

type Outcome string

const (
	OutcomeNone        Outcome = ""
	OutcomeInquiry     Outcome = "inquiry"
	OutcomeReservation Outcome = "reservation"
)

var (
	// errors
	ErrReservationUnavailable = errors.New("reservation is only available for online formations")
	ErrInvalidTransition      = errors.New("invalid wizard transition")

	successMessages = map[Outcome]string{
		OutcomeInquiry:     "Merci ! Votre demande d'information a bien été envoyée. Nous vous recontacterons très bientôt.",
		OutcomeReservation: "Merci ! Votre réservation a bien été enregistrée. Vous allez recevoir un e-mail de confirmation.",
	}
)

// SubmissionError is returned when the lead could not be written; the wizard stays on its step.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return "submitting lead: " + e.Err.Error() }
func (e *SubmissionError) Unwrap() error { return e.Err }

// LeadWriter persists leads (lead.Service).
type LeadWriter interface {
	Create(ctx context.Context, l lead.Lead) (lead.Lead, error)
}

// Offering is the formation a wizard is opened for.
type Offering struct {
	ID             string
	Code           string
	Name           string
	IsOnline       bool
	PricePerMonth  string
	DurationMonths string
}

func OfferingFromFormation(f catalog.Formation) Offering {
	return Offering{
		ID:             f.ID,
		Code:           f.Code,
		Name:           f.Name,
		IsOnline:       f.IsOnline,
		PricePerMonth:  f.PricePerMonth,
		DurationMonths: f.DurationMonths,
	}
}

type Deps struct {
	Writer     LeadWriter
	Validate   *validator.Validate
	Translator ut.Translator
}

// Wizard is the two-step inquiry/reservation form of a formation:
//   contact --SubmitInquiry--> success(inquiry)
//   contact --ProceedToReservation--> reservation   (online offerings only)
//   reservation --Back--> contact
//   reservation --ConfirmReservation--> success(reservation)
// success is terminal. Form fields are set directly on Contact and Reservation.
type Wizard struct {
	Contact     ContactForm
	Reservation ReservationForm

	offering   Offering
	deps       Deps
	startDates []time.Time
	step       Step
	outcome    Outcome
	lead       lead.Lead
}

func NewWizard(offering Offering, now time.Time, deps Deps) *Wizard {
	return &Wizard{
		Reservation: ReservationForm{NumberOfPeople: MinPeople},
		offering:    offering,
		deps:        deps,
		startDates:  NextStartDates(now, DefaultStartDateCount),
		step:        StepContact,
	}
}

func (w *Wizard) Step() Step             { return w.step }
func (w *Wizard) Outcome() Outcome       { return w.outcome }
func (w *Wizard) Offering() Offering     { return w.offering }
func (w *Wizard) StartDates() []time.Time { return w.startDates }

// Lead returns the lead written on success.
func (w *Wizard) Lead() (lead.Lead, bool) { return w.lead, w.step == StepSuccess }

// CanReserve reports whether ProceedToReservation is offered.
func (w *Wizard) CanReserve() bool {
	return w.offering.IsOnline && w.step == StepContact
}

// StartWindows lists the offered start dates with their end dates.
func (w *Wizard) StartWindows() []StartWindow {
	duration := ParseDuration(w.offering.DurationMonths)
	windows := make([]StartWindow, 0, len(w.startDates))
	for _, s := range w.startDates {
		windows = append(windows, StartWindow{Start: s, End: s.AddDate(0, duration, 0)})
	}
	return windows
}

// Quote prices the current reservation.
func (w *Wizard) Quote() Quote {
	return QuoteOnlineOffer(w.offering.PricePerMonth, w.offering.DurationMonths, w.Reservation.NumberOfPeople)
}

// IncrementPeople and DecrementPeople only act on the reservation step.
func (w *Wizard) IncrementPeople() {
	if w.step == StepReservation && w.Reservation.NumberOfPeople < MaxPeople {
		w.Reservation.NumberOfPeople++
	}
}

func (w *Wizard) DecrementPeople() {
	if w.step == StepReservation && w.Reservation.NumberOfPeople > MinPeople {
		w.Reservation.NumberOfPeople--
	}
}

// SubmitInquiry validates the contact step and writes a "Course Inquiry" lead.
func (w *Wizard) SubmitInquiry(ctx context.Context) error {
	if w.step != StepContact {
		return ErrInvalidTransition
	}
	if err := w.Contact.Validate(w.deps.Validate, w.deps.Translator); err != nil {
		return err
	}

	l := w.contactLead(lead.TypeCourseInquiry)
	return w.submit(ctx, l, OutcomeInquiry)
}

// ProceedToReservation validates the contact step and moves to the reservation step.
// Nothing is written yet.
func (w *Wizard) ProceedToReservation() error {
	if w.step != StepContact {
		return ErrInvalidTransition
	}
	if !w.offering.IsOnline {
		return ErrReservationUnavailable
	}
	if err := w.Contact.Validate(w.deps.Validate, w.deps.Translator); err != nil {
		return err
	}
	w.step = StepReservation
	return nil
}

// Back returns to the contact step; entered values are kept.
func (w *Wizard) Back() error {
	if w.step != StepReservation {
		return ErrInvalidTransition
	}
	w.step = StepContact
	return nil
}

// ConfirmReservation validates the reservation step and writes one
// "Online Course Reservation" lead holding both steps and the total price.
func (w *Wizard) ConfirmReservation(ctx context.Context) error {
	if w.step != StepReservation {
		return ErrInvalidTransition
	}
	start, err := w.Reservation.Validate(w.deps.Validate, w.deps.Translator, w.startDates)
	if err != nil {
		return err
	}

	l := w.contactLead(lead.TypeOnlineReservation)
	l.StartDate = &start
	l.NumberOfPeople = w.Reservation.NumberOfPeople
	l.Country = w.Reservation.Country
	if total := w.Quote().GrandTotal; total.Known {
		l.TotalPrice = &total.Value
	}
	return w.submit(ctx, l, OutcomeReservation)
}

// SuccessMessage is empty until the wizard succeeded.
func (w *Wizard) SuccessMessage() string {
	return successMessages[w.outcome]
}

func (w *Wizard) contactLead(typ string) lead.Lead {
	return lead.Lead{
		Type:          typ,
		FullName:      w.Contact.FullName,
		Email:         w.Contact.Email,
		Phone:         w.Contact.Phone,
		Message:       w.Contact.Message,
		FormationID:   w.offering.ID,
		FormationCode: w.offering.Code,
		FormationName: w.offering.Name,
	}
}

func (w *Wizard) submit(ctx context.Context, l lead.Lead, outcome Outcome) error {
	created, err := w.deps.Writer.Create(ctx, l)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	w.lead = created
	w.outcome = outcome
	w.step = StepSuccess
	return nil
}
