package quotation

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/caterflow/caterflow/report"
)

// PDFRenderer produces the printable variant of a quotation: the same priced
// lines laid out as an HTML table and converted to PDF by Gotenberg.
type PDFRenderer struct {
	logger   *slog.Logger
	client   *report.Client
	branding Branding
	printer  *message.Printer
	now      func() time.Time
	newRef   func() string
}

func NewPDFRenderer(logger *slog.Logger, client *report.Client, branding Branding) *PDFRenderer {
	return &PDFRenderer{
		logger:   logger,
		client:   client,
		branding: branding,
		printer:  message.NewPrinter(language.English),
		now:      time.Now,
		newRef:   NewReferenceCode,
	}
}

// WithClock pins the quotation-date source. Intended for tests.
func (p *PDFRenderer) WithClock(now func() time.Time) *PDFRenderer {
	p.now = now
	return p
}

type printableLine struct {
	Index     int
	Name      string
	NameAr    string
	Unit      string
	UnitPrice string
	Quantity  int
	Days      int
	Total     string
}

type printableData struct {
	Branding      Branding
	Reference     string
	QuotationDate string
	Info          ClientInfo
	Lines         []printableLine
	Subtotal      string
	VAT           string
	GrandTotal    string
	Validity      string
}

// Render builds the printable HTML and converts it via Gotenberg.
func (p *PDFRenderer) Render(ctx context.Context, lines []LineItem, info ClientInfo, totals Totals) ([]byte, string, error) {
	ref := info.ReferenceCode
	if ref == "" {
		ref = p.newRef()
	}
	validity := info.ValidityDays
	if validity == "" {
		validity = "3"
	}

	data := printableData{
		Branding:      p.branding,
		Reference:     ref,
		QuotationDate: p.now().Format("02/01/2006"),
		Info:          info,
		Subtotal:      p.money(totals.Subtotal),
		VAT:           p.money(totals.VAT),
		GrandTotal:    p.money(totals.GrandTotal),
		Validity:      validity,
	}
	for i, line := range lines {
		data.Lines = append(data.Lines, printableLine{
			Index:     i + 1,
			Name:      line.Name,
			NameAr:    line.NameAr,
			Unit:      line.Unit,
			UnitPrice: p.money(line.UnitPrice),
			Quantity:  line.Quantity,
			Days:      line.Days,
			Total:     p.money(line.LineTotal),
		})
	}

	var buf bytes.Buffer
	if err := printableTemplate.Execute(&buf, data); err != nil {
		return nil, "", fmt.Errorf("quotation: printable template: %w", err)
	}
	pdf, err := p.client.RenderHTML(ctx, buf.String())
	if err != nil {
		return nil, "", fmt.Errorf("quotation: convert printable to pdf: %w", err)
	}
	return pdf, ref, nil
}

// money formats an amount with grouped thousands and two decimals.
func (p *PDFRenderer) money(v float64) string {
	return p.printer.Sprintf("%.2f", v)
}

var printableTemplate = template.Must(template.New("quotation").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Calibri, Arial, sans-serif; color: #000; margin: 32px; }
.band { background: #808080; height: 6px; }
h1 { background: #808080; color: #fff; text-align: center; font-size: 18px; padding: 8px; }
h2 { text-align: center; font-size: 15px; }
.greeting { text-align: center; font-style: italic; font-size: 12px; }
table.info { width: 100%; font-size: 12px; margin: 16px 0; }
table.lines { width: 100%; border-collapse: collapse; font-size: 12px; }
table.lines th { background: #9CA3AF; color: #fff; border: 1px solid #7F7F7F; padding: 6px; }
table.lines td { border: 1px solid #7F7F7F; padding: 6px; text-align: center; }
table.summary { width: 50%; border-collapse: collapse; font-size: 12px; margin-top: 16px; }
table.summary td { border: 1px solid #7F7F7F; padding: 6px; }
tr.total td { background: #FFD966; font-weight: bold; }
.section { background: #9CA3AF; color: #fff; text-align: center; font-weight: bold; padding: 6px; margin-top: 20px; }
.terms { border: 1px solid #7F7F7F; padding: 8px; font-size: 11px; }
.rtl { direction: rtl; text-align: right; }
.footer { text-align: center; font-size: 11px; margin-top: 24px; }
</style>
</head>
<body>
<div class="band"></div>
<h1>{{.Branding.CompanyNameAr}}</h1>
<h2>Quotation - عرض سعر</h2>
<p class="greeting">Peace Be Upon You ,, Upon your kind request ,,, We are providing you a quotation for your event ,, Hoping it pleases you ,,</p>

<table class="info">
<tr><td><b>To:</b> {{.Info.ClientName}}</td><td><b>Quotation Date:</b> {{.QuotationDate}}</td></tr>
<tr><td><b>Location:</b> {{.Info.Location}}</td><td><b>Date of Event:</b> {{.Info.EventDate}}</td></tr>
<tr><td><b>Phone:</b> {{.Info.Contact}}</td><td><b>Pickup Time:</b> {{.Info.PickupTime}}</td></tr>
<tr><td><b>Event Organizer:</b> {{.Info.EventOrganizer}}</td><td><b>Number of People:</b> {{.Info.NumberOfPeople}}</td></tr>
<tr><td><b>Event Type:</b> {{.Info.EventType}}</td><td><b>Reference:</b> {{.Reference}}</td></tr>
</table>

<table class="lines">
<tr><th>#</th><th>Product</th><th>Product (arb)</th><th>Unit</th><th>Price per unit</th><th>QTY</th><th>#DAYS</th><th>Total Price</th></tr>
{{range .Lines}}
<tr><td>{{.Index}}</td><td>{{.Name}}</td><td class="rtl">{{.NameAr}}</td><td>{{.Unit}}</td><td>{{.UnitPrice}}</td><td>{{.Quantity}}</td><td>{{.Days}}</td><td>{{.Total}}</td></tr>
{{else}}
<tr><td colspan="8">No items added to quotation</td></tr>
{{end}}
</table>

<table class="summary">
<tr><td><b>Total Exclude VAT</b></td><td>{{.Subtotal}}</td></tr>
<tr><td><b>VAT 15%</b></td><td>{{.VAT}}</td></tr>
<tr class="total"><td>Total Amount</td><td>{{.GrandTotal}}</td></tr>
<tr><td><b>Paid Amount</b></td><td></td></tr>
<tr><td><b>Remaining Amount (Balance)</b></td><td></td></tr>
</table>

<div class="section">Terms &amp; Conditions - الشروط والاحكام</div>
<div class="terms">
<p>This quotation is valid for {{.Validity}} days from the date of sending the quotation, once approved 100% of the quotation total amount should be paid 3 days before the event.</p>
<p>Once booking is confirmed, the payment will not be refunded for any reason.</p>
<p>Please send a copy of transfers by E-mail</p>
<p class="rtl">العرض ساري لمدة {{.Validity}} أيام من تاريخ الإرسال و عند حال القبول يتم تحويل 100% من قيمه العرض وبسداد المبلغ كامل قبل المناسبه ب 3 أيام</p>
<p class="rtl">في حالة تأكيد الحجز تكون الدفعه غير مستردة لأي سبب من الأسباب</p>
<p class="rtl">يتم إرسال صورة من التحويلات على البريد الالكتروني</p>
</div>

<div class="section">Bank Account Details</div>
<div class="terms">
<p><b>Bank Name:</b> {{.Branding.BankName}}</p>
<p><b>Account Name:</b> {{.Branding.BankAccount}}</p>
<p><b>Account Number:</b> {{.Branding.BankAccountNo}}</p>
<p><b>IBAN:</b> {{.Branding.BankIBAN}}</p>
</div>

<p class="footer">For any inquiries: Phone: {{.Branding.ContactPhone}} | Email: {{.Branding.ContactEmail}} | Website: {{.Branding.ContactWebsite}}</p>
</body>
</html>`))
