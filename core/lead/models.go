package lead

import (
	"time"
)

// Lead types
const (
	TypeCourseInquiry     = "Course Inquiry"
	TypeOnlineReservation = "Online Course Reservation"
	TypeContactRequest    = "Contact Request"
)

var AllTypes = []string{TypeCourseInquiry, TypeOnlineReservation, TypeContactRequest}

// Lead is a record written to the `leads` collection for every form submission.
type Lead struct {
	ID        string    `json:"id"`
	Type      string    `json:"leadType"`
	CreatedAt time.Time `json:"createdAt"` // UTC, set by the store

	// contact
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message,omitempty"`

	// offering
	FormationID   string `json:"formationId,omitempty"`
	FormationCode string `json:"formationCode,omitempty"`
	FormationName string `json:"formationName,omitempty"`

	// reservation
	StartDate      *time.Time `json:"startDate,omitempty"`
	NumberOfPeople int        `json:"numberOfPeople,omitempty"`
	Country        string     `json:"country,omitempty"`
	TotalPrice     *float64   `json:"totalPrice,omitempty"`
}

func (l Lead) IsReservation() bool { return l.Type == TypeOnlineReservation }

// Document renders the lead as the key/value record stored in `leads`.
// Empty optional fields are left out; leadType and createdAt are always present.
func (l Lead) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"leadType":  l.Type,
		"createdAt": l.CreatedAt,
		"fullName":  l.FullName,
	}
	setStr := func(key, val string) {
		if val != "" {
			doc[key] = val
		}
	}
	setStr("email", l.Email)
	setStr("phone", l.Phone)
	setStr("subject", l.Subject)
	setStr("message", l.Message)
	setStr("formationId", l.FormationID)
	setStr("formationCode", l.FormationCode)
	setStr("formationName", l.FormationName)
	setStr("country", l.Country)
	if l.StartDate != nil {
		doc["startDate"] = l.StartDate.UTC()
	}
	if l.NumberOfPeople > 0 {
		doc["numberOfPeople"] = l.NumberOfPeople
	}
	if l.TotalPrice != nil {
		doc["totalPrice"] = *l.TotalPrice
	}
	return doc
}

type QueryFilter struct {
	Type  string
	Since time.Time
	Limit int
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Type == "" && qf.Since.IsZero() && qf.Limit <= 0
}
