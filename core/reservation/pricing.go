package reservation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const notAvailable = "N/A"

// in-person surcharges by group size; groups of 3 and more pay the base price
var groupSurcharges = map[int]float64{
	1: 1.4,
	2: 1.2,
}

var (
	priceRegex    = regexp.MustCompile(`^[0-9]+([.,][0-9]+)?$`)
	currencyRegex = regexp.MustCompile(`(?i)\s*(€|\$|eur|euros?|usd|fcfa|xof|cfa|dh|mad|tnd|da|dzd)\.?$`)
)

// Price is an amount that may be unknown; unknown prices render as "N/A", never as 0.
type Price struct {
	Value float64
	Known bool
}

func KnownPrice(v float64) Price { return Price{Value: roundCents(v), Known: true} }

var UnknownPrice = Price{}

func (p Price) String() string {
	if !p.Known {
		return notAvailable
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return json.Marshal(notAvailable)
	}
	return json.Marshal(p.Value)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != notAvailable {
			return errors.Errorf("invalid price %q", s)
		}
		*p = UnknownPrice
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decoding price")
	}
	*p = KnownPrice(v)
	return nil
}

// ParsePrice parses a stored price such as "1200", "1 200,50" or "350 €".
// Anything else (including an empty string) is an unknown price.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(currencyRegex.ReplaceAllString(strings.TrimSpace(s), ""))
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if !priceRegex.MatchString(s) {
		return UnknownPrice
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return UnknownPrice
	}
	return KnownPrice(v)
}

// ParseDuration parses a duration in months; missing or invalid values default to 1.
func ParseDuration(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Quote is the price of an online offering for a number of participants.
type Quote struct {
	Available      bool  `json:"available"`
	MonthlyPrice   Price `json:"monthlyPrice"`
	DurationMonths int   `json:"durationMonths"`
	Participants   int   `json:"participants"`
	TotalPerPerson Price `json:"totalPerPerson"`
	GrandTotal     Price `json:"grandTotal"`
}

// QuoteOnline prices an online offering: no group surcharge or discount applies.
func QuoteOnline(monthlyPrice float64, durationMonths, participants int) Quote {
	perPerson := roundCents(monthlyPrice * float64(durationMonths))
	return Quote{
		Available:      true,
		MonthlyPrice:   KnownPrice(monthlyPrice),
		DurationMonths: durationMonths,
		Participants:   participants,
		TotalPerPerson: KnownPrice(perPerson),
		GrandTotal:     KnownPrice(perPerson * float64(participants)),
	}
}

// QuoteOnlineOffer quotes from stored values. An unknown monthly price yields an
// unavailable quote whose amounts render as "N/A".
func QuoteOnlineOffer(pricePerMonth, durationMonths string, participants int) Quote {
	duration := ParseDuration(durationMonths)
	price := ParsePrice(pricePerMonth)
	if !price.Known {
		return Quote{
			DurationMonths: duration,
			Participants:   participants,
		}
	}
	return QuoteOnline(price.Value, duration, participants)
}

// QuoteInPerson returns the per-person price of an in-person offering for a group size.
func QuoteInPerson(basePrice float64, participants int) float64 {
	if participants < 1 {
		participants = 1
	}
	factor, ok := groupSurcharges[participants]
	if !ok {
		factor = 1
	}
	return roundCents(basePrice * factor)
}

// QuoteInPersonOffer is QuoteInPerson over a stored price; unknown prices stay unknown.
func QuoteInPersonOffer(basePrice string, participants int) Price {
	price := ParsePrice(basePrice)
	if !price.Known {
		return UnknownPrice
	}
	return KnownPrice(QuoteInPerson(price.Value, participants))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
