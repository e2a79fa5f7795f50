package sweettracker

type companyListPayload struct {
	Company []companyPayload `json:"Company"`
	Status  *bool            `json:"status,omitempty"`
	Code    string           `json:"code,omitempty"`
	Msg     string           `json:"msg,omitempty"`
}

// companyPayload carries International as the strings "true" / "false".
type companyPayload struct {
	International string `json:"International"`
	Code          string `json:"Code"`
	Name          string `json:"Name"`
}

type trackingDetailPayload struct {
	Kind       string  `json:"kind"`
	Level      int     `json:"level"`
	ManName    string  `json:"manName"`
	Telno      string  `json:"telno"`
	Time       int64   `json:"time"`
	TimeString string  `json:"timeString"`
	Where      string  `json:"where"`
	Code       *string `json:"code"`
	Remark     *string `json:"remark"`
}

type trackingInfoPayload struct {
	Status          *bool                   `json:"status,omitempty"`
	Code            string                  `json:"code,omitempty"`
	Msg             string                  `json:"msg,omitempty"`
	InvoiceNo       string                  `json:"invoiceNo"`
	Complete        bool                    `json:"complete"`
	Level           int                     `json:"level"`
	ItemName        string                  `json:"itemName"`
	ReceiverName    string                  `json:"receiverName"`
	SenderName      string                  `json:"senderName"`
	Estimate        *string                 `json:"estimate"`
	TrackingDetails []trackingDetailPayload `json:"trackingDetails"`
	FirstDetail     *trackingDetailPayload  `json:"firstDetail"`
	LastDetail      *trackingDetailPayload  `json:"lastDetail"`
	LastStateDetail *trackingDetailPayload  `json:"lastStateDetail"`
}
