package domain

import "fmt"

// ScopeDefaults is the carrier preselected when the user switches scope.
type ScopeDefaults struct {
	Domestic      Carrier
	International Carrier
}

func BuiltinScopeDefaults() ScopeDefaults {
	return ScopeDefaults{
		Domestic:      Carrier{International: false, Code: "04", Name: "CJ대한통운"},
		International: Carrier{International: true, Code: "12", Name: "EMS"},
	}
}

// For returns the default carrier for scope. ScopeUnselected has no default.
func (d ScopeDefaults) For(scope Scope) (Carrier, bool) {
	switch scope {
	case ScopeDomestic:
		return d.Domestic, d.Domestic.Code != ""
	case ScopeInternational:
		return d.International, d.International.Code != ""
	default:
		return Carrier{}, false
	}
}

func (d ScopeDefaults) With(scope Scope, carrier Carrier) (ScopeDefaults, error) {
	switch scope {
	case ScopeDomestic:
		carrier.International = false
		d.Domestic = carrier
	case ScopeInternational:
		carrier.International = true
		d.International = carrier
	default:
		return d, fmt.Errorf("%w: defaults require domestic or international", ErrInvalidScope)
	}

	return d, nil
}
