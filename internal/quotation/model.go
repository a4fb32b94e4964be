package quotation

// VATRate is the fixed VAT multiplier applied to the quotation subtotal.
// It is a business-rule constant, not a per-request parameter.
const VATRate = 0.15

// LineItem is one priced row of a quotation. Price, unit and Arabic name are
// resolved against the menu snapshot sent with the request; unknown items
// resolve to a zero-priced line so a quotation can still be produced from a
// stale snapshot.
type LineItem struct {
	Name      string  `json:"name"`
	NameAr    string  `json:"name_ar"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Days      int     `json:"days"`
	LineTotal float64 `json:"line_total"`
}

// Totals aggregates the financial summary of a quotation. No rounding is
// applied here; display rounding happens at render time only.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	VAT        float64 `json:"vat"`
	GrandTotal float64 `json:"grand_total"`
}

// ClientInfo carries the client and event details printed on the quotation.
// Every field is optional; absent fields render as blank cells.
type ClientInfo struct {
	ClientName     string
	Contact        string
	EventOrganizer string
	EventType      string
	NumberOfPeople string
	EventDate      string
	EventTime      string
	PickupTime     string
	Location       string
	ReferenceCode  string
	ValidityDays   string
	BrandCode      string
}
