package quotation

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Palette used across the workbook. The grey band/header colors follow the
// printed letterhead; the amber fill marks the grand-total row.
const (
	colorBand       = "808080"
	colorPanelHead  = "9CA3AF"
	colorTableHead  = "E0E0E0"
	colorGrandTotal = "FFD966"
	colorBorder     = "7F7F7F"
)

// sectionStyle is one entry of the declarative style table. Sections reference
// entries by name instead of repeating excelize style literals inline.
type sectionStyle struct {
	fontSize  float64
	bold      bool
	italic    bool
	fontColor string
	fill      string
	border    bool
	hAlign    string
	vAlign    string
	wrap      bool
	numFmt    string
}

var sectionStyles = map[string]sectionStyle{
	"band":         {fill: colorBand},
	"companyName":  {fontSize: 14, bold: true, fontColor: "FFFFFF", fill: colorBand, hAlign: "center", vAlign: "center"},
	"title":        {fontSize: 12, bold: true, hAlign: "center", vAlign: "center"},
	"greeting":     {fontSize: 10, italic: true, hAlign: "center", vAlign: "center"},
	"infoLabel":    {fontSize: 10, bold: true, hAlign: "left", vAlign: "center"},
	"infoValue":    {fontSize: 10, hAlign: "left", vAlign: "center"},
	"tableHeader":  {fontSize: 10, bold: true, fill: colorTableHead, border: true, hAlign: "center", vAlign: "center", wrap: true},
	"tableText":    {fontSize: 10, border: true, hAlign: "left", vAlign: "center"},
	"tableArabic":  {fontSize: 10, border: true, hAlign: "right", vAlign: "center"},
	"tableCenter":  {fontSize: 10, border: true, hAlign: "center", vAlign: "center"},
	"tableMoney":   {fontSize: 10, border: true, hAlign: "right", vAlign: "center", numFmt: "#,##0.00"},
	"placeholder":  {fontSize: 10, border: true, hAlign: "center", vAlign: "center"},
	"sectionHead":  {fontSize: 11, bold: true, fontColor: "FFFFFF", fill: colorPanelHead, hAlign: "center", vAlign: "center"},
	"detailName":   {fontSize: 10, bold: true, border: true, hAlign: "center", vAlign: "center"},
	"detailText":   {fontSize: 10, border: true, hAlign: "left", vAlign: "center", wrap: true},
	"summaryLabel": {fontSize: 10, bold: true, border: true, hAlign: "left", vAlign: "center"},
	"summaryValue": {fontSize: 10, border: true, hAlign: "right", vAlign: "center", numFmt: "#,##0"},
	"totalLabel":   {fontSize: 11, bold: true, fill: colorGrandTotal, border: true, hAlign: "left", vAlign: "center"},
	"totalValue":   {fontSize: 11, bold: true, fill: colorGrandTotal, border: true, hAlign: "right", vAlign: "center", numFmt: "#,##0"},
	"statusCell":   {fontSize: 11, bold: true, border: true, hAlign: "center", vAlign: "center"},
	"terms":        {fontSize: 9, border: true, hAlign: "left", vAlign: "top", wrap: true},
	"termsArabic":  {fontSize: 9, border: true, hAlign: "right", vAlign: "top", wrap: true},
	"bankText":     {fontSize: 10, border: true, hAlign: "left", vAlign: "center"},
	"commentBox":   {fontSize: 10, border: true, hAlign: "left", vAlign: "top", wrap: true},
	"signature":    {fontSize: 10, bold: true, border: true, hAlign: "center", vAlign: "center"},
	"signLine":     {border: true},
	"footer":       {fontSize: 9, hAlign: "center", vAlign: "center"},
	"refHeader":    {fontSize: 10, bold: true, fill: colorTableHead, border: true, hAlign: "center", vAlign: "center"},
	"refCell":      {fontSize: 10, hAlign: "left", vAlign: "center"},
}

// styleSet lazily registers excelize styles for the table above, one workbook
// style ID per section name.
type styleSet struct {
	file *excelize.File
	ids  map[string]int
}

func newStyleSet(f *excelize.File) *styleSet {
	return &styleSet{file: f, ids: make(map[string]int, len(sectionStyles))}
}

func (s *styleSet) id(name string) (int, error) {
	if id, ok := s.ids[name]; ok {
		return id, nil
	}
	spec, ok := sectionStyles[name]
	if !ok {
		return 0, fmt.Errorf("quotation: unknown section style %q", name)
	}
	style := &excelize.Style{}
	if spec.fontSize > 0 || spec.bold || spec.italic || spec.fontColor != "" {
		style.Font = &excelize.Font{
			Size:   spec.fontSize,
			Bold:   spec.bold,
			Italic: spec.italic,
			Color:  spec.fontColor,
		}
	}
	if spec.fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{spec.fill}, Pattern: 1}
	}
	if spec.border {
		style.Border = []excelize.Border{
			{Type: "left", Color: colorBorder, Style: 1},
			{Type: "right", Color: colorBorder, Style: 1},
			{Type: "top", Color: colorBorder, Style: 1},
			{Type: "bottom", Color: colorBorder, Style: 1},
		}
	}
	if spec.hAlign != "" || spec.vAlign != "" || spec.wrap {
		style.Alignment = &excelize.Alignment{
			Horizontal: spec.hAlign,
			Vertical:   spec.vAlign,
			WrapText:   spec.wrap,
		}
	}
	if spec.numFmt != "" {
		fmtCopy := spec.numFmt
		style.CustomNumFmt = &fmtCopy
	}
	id, err := s.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("quotation: register style %q: %w", name, err)
	}
	s.ids[name] = id
	return id, nil
}
