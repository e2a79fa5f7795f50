package domain

import "strings"

// SanitizeInvoice filters a tracking number as it is typed. Domestic carriers
// only accept ASCII digits; anything else passes through untouched.
func SanitizeInvoice(raw string, carrier *Carrier) string {
	if carrier == nil || carrier.International {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
