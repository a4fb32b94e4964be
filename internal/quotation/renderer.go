package quotation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetQuotation = "Quotation"
	sheetMenuRef   = "Menu Reference"

	// Content spans columns A..H (the eight line-table columns).
	lastCol = 8
)

// Branding carries the static letterhead, banking and contact details printed
// on every quotation.
type Branding struct {
	CompanyNameAr  string
	BankName       string
	BankAccount    string
	BankAccountNo  string
	BankIBAN       string
	ContactPhone   string
	ContactEmail   string
	ContactWebsite string
}

// DefaultBranding returns the ISFC letterhead used in production.
func DefaultBranding() Branding {
	return Branding{
		CompanyNameAr:  "الشركة العالمية التخصصية للأغذية",
		BankName:       "Riyad Bank",
		BankAccount:    "International Specialized Food Company",
		BankAccountNo:  "2052000010006086614000",
		BankIBAN:       "SA7620000010006086614000",
		ContactPhone:   "+966 11 234 5678",
		ContactEmail:   "info@isfc.com.sa",
		ContactWebsite: "www.isfc.com.sa",
	}
}

// Renderer builds the styled quotation workbook. The clock and reference-code
// generator are injected so renders are reproducible under test; the logo is a
// byte buffer so the renderer never touches the filesystem.
type Renderer struct {
	logger   *slog.Logger
	branding Branding
	logo     []byte
	now      func() time.Time
	newRef   func() string
}

func NewRenderer(logger *slog.Logger, branding Branding, logo []byte) *Renderer {
	return &Renderer{
		logger:   logger,
		branding: branding,
		logo:     logo,
		now:      time.Now,
		newRef:   NewReferenceCode,
	}
}

// WithClock pins the quotation-date source. Intended for tests.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// WithRefCodes pins the reference-code generator. Intended for tests.
func (r *Renderer) WithRefCodes(gen func() string) *Renderer {
	r.newRef = gen
	return r
}

// Render produces the workbook bytes plus the reference code printed on it
// (the supplied one, or a generated one when the request carried none).
func (r *Renderer) Render(menu []MenuRow, lines []LineItem, info ClientInfo, totals Totals) ([]byte, string, error) {
	ref := info.ReferenceCode
	if ref == "" {
		ref = r.newRef()
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetQuotation); err != nil {
		return nil, "", fmt.Errorf("quotation: rename sheet: %w", err)
	}

	b := &sheetBuilder{
		f:      f,
		sheet:  sheetQuotation,
		styles: newStyleSet(f),
		logger: r.logger,
		merged: make(map[string]struct{}),
		row:    1,
	}

	b.colWidths()
	r.writeLetterhead(b)
	r.writeHeader(b)
	r.writeClientBlock(b, info, ref)
	r.writeLineTable(b, lines)
	r.writeBuffetDetails(b, lines)
	r.writeSummary(b, totals)
	r.writeTerms(b, info)
	r.writeBankAndSignatures(b)
	r.writeFooter(b)
	if err := b.err; err != nil {
		return nil, "", fmt.Errorf("quotation: build worksheet: %w", err)
	}

	if err := r.writeMenuReference(f, menu); err != nil {
		return nil, "", fmt.Errorf("quotation: menu reference sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("quotation: encode workbook: %w", err)
	}
	return buf.Bytes(), ref, nil
}

func (r *Renderer) writeLetterhead(b *sheetBuilder) {
	// Thin colored filler rows frame the letterhead.
	b.styleRow("band", b.row)
	b.height(b.row, 6)
	b.next()

	logoRow := b.row
	b.height(logoRow, 52)
	if len(r.logo) > 0 {
		cell := b.cell(1, logoRow)
		err := b.f.AddPictureFromBytes(b.sheet, cell, &excelize.Picture{
			Extension: ".png",
			File:      r.logo,
			Format:    &excelize.GraphicOptions{OffsetX: 8, OffsetY: 4},
		})
		if err != nil && b.err == nil {
			b.err = err
		}
	}
	b.next()

	b.styleRow("band", b.row)
	b.height(b.row, 6)
	b.next()
}

func (r *Renderer) writeHeader(b *sheetBuilder) {
	b.mergedRow("companyName", r.branding.CompanyNameAr, 24)
	b.mergedRow("title", "Quotation - عرض سعر", 20)
	b.mergedRow("greeting", "Peace Be Upon You ,, Upon your kind request ,,, We are providing you a quotation for your event ,, Hoping it pleases you ,,", 18)
	b.next()
}

func (r *Renderer) writeClientBlock(b *sheetBuilder, info ClientInfo, ref string) {
	quotationDate := r.now().Format("02/01/2006")
	left := [][2]string{
		{"To:", info.ClientName},
		{"Location:", info.Location},
		{"Phone:", info.Contact},
		{"Event Organizer:", info.EventOrganizer},
		{"Event Type:", info.EventType},
	}
	right := [][2]string{
		{"Quotation Date:", quotationDate},
		{"Date of Event:", info.EventDate},
		{"Pickup Time:", info.PickupTime},
		{"Number of People:", info.NumberOfPeople},
		{"Reference:", ref},
	}
	for i := range left {
		row := b.row
		b.set(1, row, left[i][0])
		b.style("infoLabel", 1, row, 1, row)
		b.set(2, row, left[i][1])
		b.merge(2, row, 4, row)
		b.style("infoValue", 2, row, 4, row)

		b.set(5, row, right[i][0])
		b.style("infoLabel", 5, row, 5, row)
		b.set(6, row, right[i][1])
		b.merge(6, row, lastCol, row)
		b.style("infoValue", 6, row, lastCol, row)
		b.next()
	}
	b.next()
}

func (r *Renderer) writeLineTable(b *sheetBuilder, lines []LineItem) {
	headers := []string{"#", "Product", "Product (arb)", "Unit", "Price per unit", "QTY", "#DAYS", "Total Price"}
	row := b.row
	for col, h := range headers {
		b.set(col+1, row, h)
	}
	b.style("tableHeader", 1, row, lastCol, row)
	b.height(row, 26)
	b.next()

	if len(lines) == 0 {
		row = b.row
		b.set(1, row, "No items added to quotation")
		b.merge(1, row, lastCol, row)
		b.style("placeholder", 1, row, lastCol, row)
		b.height(row, 22)
		b.next()
		b.next()
		return
	}

	for i, line := range lines {
		row = b.row
		b.set(1, row, i+1)
		b.style("tableCenter", 1, row, 1, row)
		b.set(2, row, line.Name)
		b.style("tableText", 2, row, 2, row)
		b.set(3, row, line.NameAr)
		b.style("tableArabic", 3, row, 3, row)
		b.set(4, row, line.Unit)
		b.style("tableCenter", 4, row, 4, row)
		b.set(5, row, line.UnitPrice)
		b.style("tableMoney", 5, row, 5, row)
		b.set(6, row, line.Quantity)
		b.style("tableCenter", 6, row, 6, row)
		b.set(7, row, line.Days)
		b.style("tableCenter", 7, row, 7, row)
		b.set(8, row, line.LineTotal)
		b.style("tableMoney", 8, row, 8, row)
		b.next()
	}
	b.next()
}

func (r *Renderer) writeBuffetDetails(b *sheetBuilder, lines []LineItem) {
	var detailed []LineItem
	for _, line := range lines {
		if line.NameAr != "" {
			detailed = append(detailed, line)
		}
	}
	if len(detailed) == 0 {
		return
	}

	b.mergedRow("sectionHead", "Buffets - Banquet Details - التفاصيل", 22)
	for _, line := range detailed {
		row := b.row
		b.set(1, row, line.Name)
		b.merge(1, row, 3, row)
		b.style("detailName", 1, row, 3, row)
		b.set(4, row, line.NameAr)
		b.merge(4, row, lastCol, row)
		b.style("tableArabic", 4, row, lastCol, row)
		b.next()
	}
	b.next()
}

func (r *Renderer) writeSummary(b *sheetBuilder, totals Totals) {
	headRow := b.row
	b.set(1, headRow, "Invoice Details")
	b.merge(1, headRow, 6, headRow)
	b.style("sectionHead", 1, headRow, 6, headRow)
	b.set(7, headRow, "Status of Quotation - حاله العرض")
	b.merge(7, headRow, lastCol, headRow)
	b.style("sectionHead", 7, headRow, lastCol, headRow)
	b.height(headRow, 22)
	b.next()

	// Display-only rounding: the stored totals stay exact, the cells carry a
	// whole-unit number format.
	summary := []struct {
		label string
		value any
		total bool
	}{
		{"Total Exclude VAT", totals.Subtotal, false},
		{"VAT 15%", totals.VAT, false},
		{"Total Amount", totals.GrandTotal, true},
		{"Paid Amount", "", false},
		{"Remaining Amount (Balance)", "", false},
	}
	firstRow := b.row
	for _, entry := range summary {
		row := b.row
		labelStyle, valueStyle := "summaryLabel", "summaryValue"
		if entry.total {
			labelStyle, valueStyle = "totalLabel", "totalValue"
		}
		b.set(1, row, entry.label)
		b.merge(1, row, 4, row)
		b.style(labelStyle, 1, row, 4, row)
		b.set(5, row, entry.value)
		b.merge(5, row, 6, row)
		b.style(valueStyle, 5, row, 6, row)
		b.next()
	}
	lastRow := b.row - 1

	// Static placeholder, not derived from any stored order status.
	b.set(7, firstRow, "Open")
	b.merge(7, firstRow, lastCol, lastRow)
	b.style("statusCell", 7, firstRow, lastCol, lastRow)
	b.next()
}

func (r *Renderer) writeTerms(b *sheetBuilder, info ClientInfo) {
	validity := info.ValidityDays
	if validity == "" {
		validity = "3"
	}

	b.mergedRow("sectionHead", "Terms & Conditions - الشروط والاحكام", 22)

	english := fmt.Sprintf("This quotation is valid for %s days from the date of sending the quotation, once approved 100%% of the quotation total amount should be paid 3 days before the event.\nOnce booking is confirmed, the payment will not be refunded for any reason.\nPlease send a copy of transfers by E-mail", validity)
	row := b.row
	b.set(1, row, english)
	b.merge(1, row, lastCol, row)
	b.style("terms", 1, row, lastCol, row)
	b.height(row, 54)
	b.next()

	arabic := fmt.Sprintf("العرض ساري لمدة %s أيام من تاريخ الإرسال و عند حال القبول يتم تحويل 100%% من قيمه العرض وبسداد المبلغ كامل قبل المناسبه ب 3 أيام\nفي حالة تأكيد الحجز تكون الدفعه غير مستردة لأي سبب من الأسباب\nيتم إرسال صورة من التحويلات على البريد الالكتروني", validity)
	row = b.row
	b.set(1, row, arabic)
	b.merge(1, row, lastCol, row)
	b.style("termsArabic", 1, row, lastCol, row)
	b.height(row, 54)
	b.next()
	b.next()
}

func (r *Renderer) writeBankAndSignatures(b *sheetBuilder) {
	headRow := b.row
	b.set(1, headRow, "Bank Account Details")
	b.merge(1, headRow, 4, headRow)
	b.style("sectionHead", 1, headRow, 4, headRow)
	b.set(5, headRow, "Comments")
	b.merge(5, headRow, lastCol, headRow)
	b.style("sectionHead", 5, headRow, lastCol, headRow)
	b.height(headRow, 22)
	b.next()

	bank := [][2]string{
		{"Bank Name:", r.branding.BankName},
		{"Account Name:", r.branding.BankAccount},
		{"Account Number:", r.branding.BankAccountNo},
		{"IBAN:", r.branding.BankIBAN},
	}
	firstRow := b.row
	for _, entry := range bank {
		row := b.row
		b.set(1, row, entry[0])
		b.style("summaryLabel", 1, row, 1, row)
		b.set(2, row, entry[1])
		b.merge(2, row, 4, row)
		b.style("bankText", 2, row, 4, row)
		b.next()
	}
	lastRow := b.row - 1
	b.merge(5, firstRow, lastCol, lastRow)
	b.style("commentBox", 5, firstRow, lastCol, lastRow)
	b.next()

	// Signature lines are filled by hand after printing.
	row := b.row
	signatures := []struct {
		label      string
		start, end int
	}{
		{"Prepared By", 1, 2},
		{"Sales Manager", 4, 5},
		{"Client Approval", 7, 8},
	}
	for _, sig := range signatures {
		b.set(sig.start, row, sig.label)
		b.merge(sig.start, row, sig.end, row)
		b.style("signature", sig.start, row, sig.end, row)
	}
	b.next()
	lineRow := b.row
	b.height(lineRow, 34)
	for _, sig := range signatures {
		b.merge(sig.start, lineRow, sig.end, lineRow)
		b.style("signLine", sig.start, lineRow, sig.end, lineRow)
	}
	b.next()
	b.next()
}

func (r *Renderer) writeFooter(b *sheetBuilder) {
	contact := fmt.Sprintf("For any inquiries: Phone: %s | Email: %s | Website: %s",
		r.branding.ContactPhone, r.branding.ContactEmail, r.branding.ContactWebsite)
	b.mergedRow("footer", contact, 18)
}

func (r *Renderer) writeMenuReference(f *excelize.File, menu []MenuRow) error {
	if _, err := f.NewSheet(sheetMenuRef); err != nil {
		return err
	}
	styles := newStyleSet(f)
	headerID, err := styles.id("refHeader")
	if err != nil {
		return err
	}
	headers := []string{"Item", "Arabic", "Unit", "Price", "Source", "Category"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetMenuRef, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetMenuRef, cell, cell, headerID); err != nil {
			return err
		}
	}
	for i, row := range menu {
		values := []any{row.Item, row.Arabic, row.Unit, row.Price, row.Source, row.Category}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetMenuRef, cell, v); err != nil {
				return err
			}
		}
	}
	for col, width := range []float64{30, 22, 10, 12, 22, 22} {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetMenuRef, name, name, width); err != nil {
			return err
		}
	}
	return nil
}
