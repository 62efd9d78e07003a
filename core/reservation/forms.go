package reservation

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/institut/core"
)

// bounds of ReservationForm.NumberOfPeople
const (
	MinPeople = 1
	MaxPeople = 20
)

var (
	countryTag  = "country"
	countryText = "pays non pris en charge"

	peopleRangeText   = fmt.Sprintf("le nombre de participants doit être compris entre %d et %d", MinPeople, MaxPeople)
	startDateText     = "date de début indisponible"
	suggestionFmt     = "%s (vouliez-vous dire « %s » ?)"
	startDateLayouts  = []string{"2006-01-02", time.RFC3339}
	fullNameMaxLenTag = "max=120"
	messageMaxLenTag  = "max=5000"
)

// InitValidators registers the reservation validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(countryTag, countryValidation)
	core.RegisterCustomTranslation(validate, translator, countryTag, countryText)
}

// countryValidation only allows the listed countries.
func countryValidation(fl validator.FieldLevel) bool {
	return IsKnownCountry(fl.Field().String())
}

// ContactForm is the first wizard step; it is also the whole inquiry form.
type ContactForm struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
}

func (cf *ContactForm) Clean() {
	cf.FullName = strings.Join(strings.Fields(cf.FullName), " ")
	cf.Email = core.CleanString(cf.Email, true /* lower */)
	cf.Phone = core.CleanString(cf.Phone)
	cf.Message = core.CleanString(cf.Message)
}

// Validate cleans the form and checks: full name and email required, email RFC-valid,
// phone and message optional.
func (cf *ContactForm) Validate(validate *validator.Validate, translator ut.Translator) error {
	cf.Clean()

	var errs []core.FieldError
	core.CheckVar(validate, translator, &errs, "fullName", cf.FullName, "required,"+fullNameMaxLenTag)
	core.CheckVar(validate, translator, &errs, "email", cf.Email, "required,email")
	core.CheckVar(validate, translator, &errs, "phone", cf.Phone, "omitempty,phone")
	core.CheckVar(validate, translator, &errs, "message", cf.Message, "omitempty,"+messageMaxLenTag)

	if len(errs) > 0 {
		return core.NewValidationError(nil, errs...)
	}
	return nil
}

// ReservationForm is the second wizard step, for online offerings only.
type ReservationForm struct {
	StartDate      string `json:"startDate"` // YYYY-MM-DD (RFC 3339 accepted)
	NumberOfPeople int    `json:"numberOfPeople"`
	Country        string `json:"country"`
}

func (rf *ReservationForm) Clean() {
	rf.StartDate = core.CleanString(rf.StartDate)
	rf.Country = core.CleanString(rf.Country)
}

// Validate checks the form against the offered start dates and returns the chosen one.
func (rf *ReservationForm) Validate(validate *validator.Validate, translator ut.Translator, startDates []time.Time) (time.Time, error) {
	rf.Clean()

	var errs []core.FieldError
	var start time.Time
	if core.CheckVar(validate, translator, &errs, "startDate", rf.StartDate, "required") {
		var ok bool
		if start, ok = matchStartDate(rf.StartDate, startDates); !ok {
			errs = append(errs, core.FieldError{Field: "startDate", Error: startDateText})
		}
	}

	if rf.NumberOfPeople < MinPeople || rf.NumberOfPeople > MaxPeople {
		errs = append(errs, core.FieldError{Field: "numberOfPeople", Error: peopleRangeText})
	}

	var countryErrs []core.FieldError
	if !core.CheckVar(validate, translator, &countryErrs, "country", rf.Country, "required,"+countryTag) {
		if suggestion, ok := SuggestCountry(rf.Country); ok && rf.Country != "" {
			countryErrs[0].Error = fmt.Sprintf(suggestionFmt, countryErrs[0].Error, suggestion)
		}
		errs = append(errs, countryErrs...)
	}

	if len(errs) > 0 {
		return time.Time{}, core.NewValidationError(nil, errs...)
	}
	return start, nil
}

// matchStartDate finds the candidate falling on the same calendar day as `s`.
func matchStartDate(s string, candidates []time.Time) (time.Time, bool) {
	for _, layout := range startDateLayouts {
		d, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, day := d.Date()
		for _, c := range candidates {
			cy, cm, cday := c.Date()
			if y == cy && m == cm && day == cday {
				return c, true
			}
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}
