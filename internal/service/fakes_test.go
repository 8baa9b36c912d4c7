package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/tourbook/internal/model"
	"github.com/nurpe/tourbook/internal/repository"
)

type fakeReservationStore struct {
	rows      map[uuid.UUID]repository.ReservationRecord
	updates   []map[string]interface{}
	deleted   []uuid.UUID
	updateErr error
	createErr error
	// beforeUpdate runs ahead of the write to simulate a concurrent writer.
	beforeUpdate func()
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{rows: map[uuid.UUID]repository.ReservationRecord{}}
}

func (f *fakeReservationStore) Create(_ context.Context, rec *repository.ReservationRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[rec.ID] = *rec
	return nil
}

func (f *fakeReservationStore) Get(_ context.Context, id uuid.UUID) (*repository.ReservationRecord, error) {
	rec, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

func (f *fakeReservationStore) List(_ context.Context, ownerID *uuid.UUID, page model.Page) ([]repository.ReservationRecord, error) {
	var rows []repository.ReservationRecord
	for _, rec := range f.rows {
		if ownerID != nil && (rec.UserID == nil || *rec.UserID != *ownerID) {
			continue
		}
		rows = append(rows, rec)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	if page.Limit > 0 {
		if page.Offset >= len(rows) {
			return nil, nil
		}
		end := page.Offset + page.Limit
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[page.Offset:end]
	}
	return rows, nil
}

func (f *fakeReservationStore) Update(_ context.Context, id uuid.UUID, fromStatus model.ReservationStatus, columns map[string]interface{}) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.updates = append(f.updates, columns)
	rec, ok := f.rows[id]
	if !ok || (fromStatus != "" && rec.Status != string(fromStatus)) {
		return false, nil
	}
	for column, value := range columns {
		switch column {
		case "status":
			rec.Status = value.(string)
		case "customer_name":
			rec.CustomerName = value.(string)
		case "total_amount":
			rec.TotalAmount = value.(int64)
		case "are_assignments_visible_to_user":
			rec.AreAssignmentsVisibleToUser = value.(bool)
		case "assigned_guide":
			rec.AssignedGuide = textColumn(value)
		case "daily_accommodations":
			rec.DailyAccommodations = textColumn(value)
		case "history":
			rec.History = textColumn(value)
		case "updated_at":
			rec.UpdatedAt = value.(time.Time)
		}
	}
	f.rows[id] = rec
	return true, nil
}

func (f *fakeReservationStore) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.rows, id)
	return nil
}

func textColumn(value interface{}) *string {
	if value == nil {
		return nil
	}
	text := value.(string)
	return &text
}

type fakeProductStore struct {
	products map[uuid.UUID]model.Product
	defaults []string
	gets     int
}

func (f *fakeProductStore) GetProduct(_ context.Context, id uuid.UUID) (*model.Product, error) {
	f.gets++
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (f *fakeProductStore) SetDefaultOption(_ context.Context, _ uuid.UUID, category model.OptionCategory, optionID string) error {
	f.defaults = append(f.defaults, string(category)+":"+optionID)
	return nil
}

type fakeCatalogCache struct {
	products    map[uuid.UUID]model.Product
	invalidated []uuid.UUID
}

func (f *fakeCatalogCache) Get(_ context.Context, id uuid.UUID) (*model.Product, bool) {
	product, ok := f.products[id]
	if !ok {
		return nil, false
	}
	return &product, true
}

func (f *fakeCatalogCache) Set(_ context.Context, product model.Product) {
	f.products[product.ID] = product
}

func (f *fakeCatalogCache) Invalidate(_ context.Context, id uuid.UUID) {
	f.invalidated = append(f.invalidated, id)
	delete(f.products, id)
}

type fakeQuoteStore struct {
	quotes   map[uuid.UUID]model.Quote
	statuses map[uuid.UUID]model.QuoteStatus
}

func (f *fakeQuoteStore) GetQuote(_ context.Context, id uuid.UUID) (*model.Quote, error) {
	quote, ok := f.quotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &quote, nil
}

func (f *fakeQuoteStore) UpdateQuoteStatus(_ context.Context, id uuid.UUID, status model.QuoteStatus) error {
	if _, ok := f.quotes[id]; !ok {
		return errors.New("quote vanished")
	}
	f.statuses[id] = status
	return nil
}

type fakeSpreadsheet struct {
	reports []model.ReservationReport
}

func (f *fakeSpreadsheet) Generate(report model.ReservationReport) ([]byte, error) {
	f.reports = append(f.reports, report)
	return []byte("xlsx"), nil
}

type fakeVoucher struct {
	vouchers []model.Reservation
}

func (f *fakeVoucher) Generate(res model.Reservation) ([]byte, error) {
	f.vouchers = append(f.vouchers, res)
	return []byte("%PDF"), nil
}
