package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/tourbook/internal/model"
)

const (
	unicodeFont = "VoucherSans"
	coreFont    = "Helvetica"
)

// Generator renders booking vouchers. Hangul and other non-Latin text needs a
// TrueType font; without one the core Helvetica font is used.
type Generator struct {
	fontData []byte
}

func NewGenerator(fontPath string) (*Generator, error) {
	if strings.TrimSpace(fontPath) == "" {
		return &Generator{}, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read voucher font: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("voucher font %s is empty", fontPath)
	}
	return &Generator{fontData: data}, nil
}

type writer struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

func (w *writer) setFont(style string, size float64) {
	w.pdf.SetFont(w.font, style, size)
}

func (w *writer) line(height float64, text, align string) {
	w.pdf.CellFormat(0, height, w.tr(text), "", 1, align, false, 0, "")
}

func (g *Generator) Generate(res model.Reservation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	w := &writer{pdf: pdf, font: coreFont, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if len(g.fontData) > 0 {
		pdf.AddUTF8FontFromBytes(unicodeFont, "", g.fontData)
		pdf.AddUTF8FontFromBytes(unicodeFont, "B", g.fontData)
		w.font = unicodeFont
		w.tr = func(s string) string { return s }
	}

	w.setFont("B", 16)
	w.line(10, "Booking voucher", "C")
	w.setFont("", 10)
	w.line(6, "Reservation "+res.ID.String(), "C")
	pdf.Ln(4)

	w.setFont("B", 12)
	w.line(8, "Tour", "L")
	w.setFont("", 11)
	for _, text := range []string{
		"Product: " + safeValue(res.ProductName),
		"Date: " + safeValue(res.Date),
		fmt.Sprintf("Travelers: %s (%d people)", safeValue(res.Headcount), res.TotalPeople),
		"Status: " + string(res.Status),
	} {
		w.line(6, text, "L")
	}
	pdf.Ln(2)

	w.setFont("B", 12)
	w.line(8, "Customer", "L")
	w.setFont("", 11)
	for _, text := range []string{
		safeValue(res.CustomerName),
		"Email: " + safeValue(res.Email),
		"Phone: " + safeValue(res.Phone),
	} {
		w.line(6, text, "L")
	}
	pdf.Ln(2)

	w.setFont("B", 12)
	w.line(8, "Payment", "L")
	widths := []float64{80, 50, 50}
	drawTableRow(w, []string{"Item", "Amount", "Status"}, widths, true)
	drawTableRow(w, []string{"Total", formatAmount(res.TotalAmount), ""}, widths, false)
	drawTableRow(w, []string{"Deposit", formatAmount(res.Deposit), string(res.DepositStatus)}, widths, false)
	drawTableRow(w, []string{"Balance (paid locally)", formatAmount(res.Balance), string(res.BalanceStatus)}, widths, false)
	pdf.Ln(4)

	if res.AssignedGuide != nil {
		w.setFont("B", 12)
		w.line(8, "Guide", "L")
		w.setFont("", 11)
		w.line(6, safeValue(res.AssignedGuide.Name), "L")
		if res.AssignedGuide.Phone != "" {
			w.line(6, "Phone: "+res.AssignedGuide.Phone, "L")
		}
		pdf.Ln(2)
	}

	if len(res.DailyAccommodations) > 0 {
		w.setFont("B", 12)
		w.line(8, "Accommodation", "L")
		widths := []float64{15, 30, 70, 65}
		drawTableRow(w, []string{"Day", "Date", "Name", "Address"}, widths, true)
		for _, stay := range res.DailyAccommodations {
			drawTableRow(w, []string{strconv.Itoa(stay.Day), stay.Date, stay.Name, stay.Address}, widths, false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(w *writer, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	w.setFont(style, 10)
	for i, col := range cols {
		align := "L"
		if i == 1 && !header {
			align = "R"
		}
		w.pdf.CellFormat(widths[i], 8, w.tr(col), "1", 0, align, false, 0, "")
	}
	w.pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// formatAmount groups thousands: 1250000 -> "1,250,000".
func formatAmount(value int64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	digits := strconv.FormatInt(value, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
