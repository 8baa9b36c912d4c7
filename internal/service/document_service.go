package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/tourbook/internal/model"
)

type SpreadsheetGenerator interface {
	Generate(report model.ReservationReport) ([]byte, error)
}

type VoucherGenerator interface {
	Generate(res model.Reservation) ([]byte, error)
}

type DocumentService struct {
	reservations *ReservationService
	excel        SpreadsheetGenerator
	pdf          VoucherGenerator
	now          func() time.Time
}

type DocumentResult struct {
	FileName string
	Content  []byte
}

func NewDocumentService(reservations *ReservationService, excel SpreadsheetGenerator, pdf VoucherGenerator) *DocumentService {
	return &DocumentService{
		reservations: reservations,
		excel:        excel,
		pdf:          pdf,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ExportReservations renders every reservation into a spreadsheet. Admin only.
func (s *DocumentService) ExportReservations(ctx context.Context, principal model.Principal) (*DocumentResult, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	reservations, err := s.reservations.List(ctx, principal, model.Page{})
	if err != nil {
		return nil, err
	}

	report := model.ReservationReport{
		GeneratedAt:  s.now(),
		Reservations: reservations,
	}
	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName: fmt.Sprintf("reservations-%s.xlsx", report.GeneratedAt.Format("20060102-150405")),
		Content:  content,
	}, nil
}

// Voucher renders the booking voucher for the owner or an admin.
func (s *DocumentService) Voucher(ctx context.Context, id uuid.UUID, principal model.Principal) (*DocumentResult, error) {
	res, err := s.reservations.Get(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*res)
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(res.ProductName)
	if name == "" {
		name = "booking"
	}
	return &DocumentResult{
		FileName: fmt.Sprintf("voucher-%s-%s.pdf", name, res.ID.String()[:8]),
		Content:  content,
	}, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
