package reservation

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// OtherCountry is offered to visitors whose country is not listed.
const OtherCountry = "Autre"

// Countries lists the countries a reservation can be made from.
var Countries = []string{
	"Algérie",
	"Belgique",
	"Bénin",
	"Burkina Faso",
	"Burundi",
	"Cameroun",
	"Canada",
	"Centrafrique",
	"Comores",
	"Congo",
	"Côte d'Ivoire",
	"Djibouti",
	"France",
	"Gabon",
	"Guinée",
	"Haïti",
	"Liban",
	"Luxembourg",
	"Madagascar",
	"Mali",
	"Maroc",
	"Maurice",
	"Mauritanie",
	"Monaco",
	"Niger",
	"RD Congo",
	"Rwanda",
	"Sénégal",
	"Seychelles",
	"Suisse",
	"Tchad",
	"Togo",
	"Tunisie",
	OtherCountry,
}

// suggestion cut-off for SuggestCountry
const countrySimilarity = 0.6

func IsKnownCountry(s string) bool {
	for _, c := range Countries {
		if c == s {
			return true
		}
	}
	return false
}

// SuggestCountry returns the listed country closest to `s` (case-insensitive), if any is close enough.
func SuggestCountry(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}

	var (
		best      string
		bestRatio float64
	)
	chars := strings.Split(s, "")
	for _, c := range Countries {
		ratio := difflib.NewMatcher(chars, strings.Split(strings.ToLower(c), "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	if bestRatio < countrySimilarity {
		return "", false
	}
	return best, true
}
