package quotation

import "encoding/json"

// MenuRow is one catalog entry of the menu snapshot sent by the client.
// Field names follow the upload format used by the spreadsheet tooling.
type MenuRow struct {
	Item     string  `json:"Item"`
	Arabic   string  `json:"Arabic"`
	Unit     string  `json:"Unit"`
	Price    float64 `json:"Price"`
	Source   string  `json:"Source"`
	Category string  `json:"Category"`
}

// OrderRow is one requested line of the quotation.
type OrderRow struct {
	Item     string `json:"Item"`
	Quantity int    `json:"Quantity"`
	Days     int    `json:"Days"`
}

// clientInfoPayload accepts both naming variants the clients send
// (mobileNumber/clientContact, eventTime/pickupTime, serialNumber/referenceCode).
type clientInfoPayload struct {
	ClientName     string          `json:"clientName"`
	MobileNumber   string          `json:"mobileNumber"`
	ClientContact  string          `json:"clientContact"`
	EventOrganizer string          `json:"eventOrganizer"`
	EventType      string          `json:"eventType"`
	NumberOfPeople json.RawMessage `json:"numberOfPeople"`
	EventDate      string          `json:"eventDate"`
	EventTime      string          `json:"eventTime"`
	PickupTime     string          `json:"pickupTime"`
	Location       string          `json:"location"`
	SerialNumber   string          `json:"serialNumber"`
	ReferenceCode  string          `json:"referenceCode"`
	ValidityDays   json.RawMessage `json:"validityDays"`
	BrandCode      string          `json:"brandCode"`
}

// GenerateRequest is the payload of the quotation-generation endpoint.
// MenuData and OrderData distinguish between absent (nil) and empty: a
// missing array is a client error, an empty one still renders a workbook.
type GenerateRequest struct {
	MenuData   []MenuRow         `json:"menuData"`
	OrderData  []OrderRow        `json:"orderData"`
	ClientInfo clientInfoPayload `json:"clientInfo"`
}

// Client normalises the duck-typed payload into a ClientInfo.
func (r GenerateRequest) Client() ClientInfo {
	info := ClientInfo{
		ClientName:     r.ClientInfo.ClientName,
		Contact:        firstNonEmpty(r.ClientInfo.MobileNumber, r.ClientInfo.ClientContact),
		EventOrganizer: r.ClientInfo.EventOrganizer,
		EventType:      r.ClientInfo.EventType,
		NumberOfPeople: rawString(r.ClientInfo.NumberOfPeople),
		EventDate:      r.ClientInfo.EventDate,
		EventTime:      r.ClientInfo.EventTime,
		PickupTime:     firstNonEmpty(r.ClientInfo.PickupTime, r.ClientInfo.EventTime),
		Location:       r.ClientInfo.Location,
		ReferenceCode:  firstNonEmpty(r.ClientInfo.ReferenceCode, r.ClientInfo.SerialNumber),
		ValidityDays:   rawString(r.ClientInfo.ValidityDays),
		BrandCode:      r.ClientInfo.BrandCode,
	}
	return info
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// rawString renders a JSON scalar (string or number) as its display text.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
