package domain

import (
	"fmt"
	"strings"
)

type Carrier struct {
	International bool
	Code          string
	Name          string
}

// Scope selects which part of the carrier directory is offered for selection.
type Scope int

const (
	ScopeUnselected Scope = iota
	ScopeDomestic
	ScopeInternational
)

func ParseScope(raw string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return ScopeUnselected, nil
	case "domestic":
		return ScopeDomestic, nil
	case "international", "intl":
		return ScopeInternational, nil
	default:
		return ScopeUnselected, fmt.Errorf("%w: %q", ErrInvalidScope, raw)
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeDomestic:
		return "domestic"
	case ScopeInternational:
		return "international"
	default:
		return "all"
	}
}

func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FilterByScope keeps the carriers whose International flag matches scope.
// ScopeUnselected returns every carrier. Directory order is preserved.
func FilterByScope(all []Carrier, scope Scope) []Carrier {
	filtered := make([]Carrier, 0, len(all))
	for _, carrier := range all {
		switch scope {
		case ScopeDomestic:
			if carrier.International {
				continue
			}
		case ScopeInternational:
			if !carrier.International {
				continue
			}
		}
		filtered = append(filtered, carrier)
	}

	return filtered
}

func FindByCode(carriers []Carrier, code string) (Carrier, bool) {
	for _, carrier := range carriers {
		if carrier.Code == code {
			return carrier, true
		}
	}

	return Carrier{}, false
}

func ValidateDirectory(carriers []Carrier) error {
	seen := make(map[string]struct{}, len(carriers))
	for _, carrier := range carriers {
		if _, ok := seen[carrier.Code]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCarrierCode, carrier.Code)
		}
		seen[carrier.Code] = struct{}{}
	}

	return nil
}
