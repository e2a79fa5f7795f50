package domain

// TrackingEvent is one scan reported by the tracking service.
type TrackingEvent struct {
	StageLabel       string
	Level            int
	ContactName      string
	ContactPhone     string
	TimestampRaw     int64
	TimestampDisplay string
	Location         string
	StatusCode       *string
	Remark           *string
}

// TrackingResult is replaced wholesale on every query. Events arrive oldest
// first.
type TrackingResult struct {
	InvoiceNo    string
	CarrierName  string
	Complete     bool
	CurrentLevel int
	ItemName     string
	ReceiverName string
	SenderName   string
	Estimate     string
	Events       []TrackingEvent
	FirstEvent   *TrackingEvent
	LastEvent    *TrackingEvent
	ErrorCode    string
	ErrorMessage string
}

// HasData reports whether the service returned any scan at all.
func (r TrackingResult) HasData() bool {
	return r.FirstEvent != nil
}

var invalidRequestCodes = map[string]struct{}{
	"104": {},
	"105": {},
}

// IsInvalidRequestCode reports whether code is one of the service's
// "invalid carrier or invoice" responses.
func IsInvalidRequestCode(code string) bool {
	_, ok := invalidRequestCodes[code]
	return ok
}
