package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/tourbook/internal/model"
	"github.com/nurpe/tourbook/internal/repository"
)

type ReservationStore interface {
	Create(ctx context.Context, rec *repository.ReservationRecord) error
	Get(ctx context.Context, id uuid.UUID) (*repository.ReservationRecord, error)
	List(ctx context.Context, ownerID *uuid.UUID, page model.Page) ([]repository.ReservationRecord, error)
	Update(ctx context.Context, id uuid.UUID, fromStatus model.ReservationStatus, columns map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationService struct {
	store ReservationStore
	now   func() time.Time
	newID func() uuid.UUID
}

type CreateReservationInput struct {
	ID                          *uuid.UUID                 `json:"id"`
	Type                        model.ReservationType      `json:"type"`
	Status                      model.ReservationStatus    `json:"status"`
	ProductName                 string                     `json:"productName"`
	UserID                      *uuid.UUID                 `json:"-"`
	CustomerName                string                     `json:"customerName"`
	Email                       string                     `json:"email"`
	Phone                       string                     `json:"phone"`
	Date                        string                     `json:"date"`
	Headcount                   string                     `json:"headcount"`
	TotalPeople                 int                        `json:"totalPeople"`
	TotalAmount                 int64                      `json:"totalAmount"`
	Deposit                     int64                      `json:"deposit"`
	DepositStatus               model.PaymentStatus        `json:"depositStatus"`
	Balance                     int64                      `json:"balance"`
	BalanceStatus               model.PaymentStatus        `json:"balanceStatus"`
	AssignedGuide               *model.Guide               `json:"assignedGuide"`
	DailyAccommodations         []model.DailyAccommodation `json:"dailyAccommodations"`
	History                     []model.HistoryEntry       `json:"history"`
	AreAssignmentsVisibleToUser bool                       `json:"areAssignmentsVisibleToUser"`
}

func NewReservationService(store ReservationStore) *ReservationService {
	return &ReservationService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
}

// Create books a reservation on behalf of principal, which may be anonymous.
// Only admins choose the id, lifecycle statuses and assignments; everyone
// else gets a fresh unpaid pending_payment booking.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput, principal model.Principal) (*model.Reservation, error) {
	if !principal.IsAdmin() {
		input = restrictCreate(input)
	}
	return s.create(ctx, input)
}

func restrictCreate(input CreateReservationInput) CreateReservationInput {
	input.ID = nil
	input.Status = model.ReservationStatusPendingPayment
	input.DepositStatus = model.PaymentStatusUnpaid
	input.BalanceStatus = model.PaymentStatusUnpaid
	input.AssignedGuide = nil
	input.DailyAccommodations = nil
	input.AreAssignmentsVisibleToUser = false
	return input
}

func (s *ReservationService) create(ctx context.Context, input CreateReservationInput) (*model.Reservation, error) {
	input.ProductName = strings.TrimSpace(input.ProductName)
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	if input.Type == "" {
		input.Type = model.ReservationTypeProduct
	}
	if input.Status == "" {
		input.Status = model.ReservationStatusPendingPayment
	}
	if input.DepositStatus == "" {
		input.DepositStatus = model.PaymentStatusUnpaid
	}
	if input.BalanceStatus == "" {
		input.BalanceStatus = model.PaymentStatusUnpaid
	}
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	id := s.newID()
	if input.ID != nil && *input.ID != uuid.Nil {
		id = *input.ID
	}
	now := s.now()

	res := model.Reservation{
		ID:                          id,
		Type:                        input.Type,
		Status:                      input.Status,
		ProductName:                 input.ProductName,
		UserID:                      input.UserID,
		CustomerName:                input.CustomerName,
		Email:                       strings.TrimSpace(input.Email),
		Phone:                       strings.TrimSpace(input.Phone),
		Date:                        input.Date,
		Headcount:                   input.Headcount,
		TotalPeople:                 input.TotalPeople,
		TotalAmount:                 input.TotalAmount,
		Deposit:                     input.Deposit,
		DepositStatus:               input.DepositStatus,
		Balance:                     input.Balance,
		BalanceStatus:               input.BalanceStatus,
		AssignedGuide:               input.AssignedGuide,
		DailyAccommodations:         input.DailyAccommodations,
		History:                     input.History,
		AreAssignmentsVisibleToUser: input.AreAssignmentsVisibleToUser,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}

	rec, err := repository.EncodeReservation(res)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.store.Create(ctx, &rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: reservation %s", ErrAlreadyExists, id)
		}
		return nil, err
	}
	return &res, nil
}

// Get returns the reservation for its owner or an admin. Owners only see
// guide and accommodation assignments once they are released to them.
func (s *ReservationService) Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanRead(res.UserID) {
		return nil, ErrPermissionDenied
	}
	return redactFor(principal, res), nil
}

func (s *ReservationService) List(ctx context.Context, principal model.Principal, page model.Page) ([]model.Reservation, error) {
	if page.Limit < 0 || page.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}

	var ownerID *uuid.UUID
	if !principal.IsAdmin() {
		if principal.UserID == uuid.Nil {
			return nil, ErrUnauthorized
		}
		owner := principal.UserID
		ownerID = &owner
	}

	rows, err := s.store.List(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	result := make([]model.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := repository.DecodeReservation(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *redactFor(principal, &res))
	}
	return result, nil
}

// Update applies a partial patch as an admin, then reloads the committed row.
// A status change only commits if the row still holds the status the
// transition was checked against.
func (s *ReservationService) Update(ctx context.Context, id uuid.UUID, patch model.ReservationPatch, principal model.Principal) (*model.Reservation, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && !current.Status.CanTransitionTo(*patch.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, *patch.Status)
	}

	columns, err := repository.PatchColumns(patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var fromStatus model.ReservationStatus
	if patch.Status != nil {
		fromStatus = current.Status
	}
	updated, err := s.store.Update(ctx, id, fromStatus, columns)
	if err != nil {
		return nil, err
	}
	if !updated {
		latest, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: status changed to %s meanwhile", ErrInvalidTransition, latest.Status)
	}
	return s.load(ctx, id)
}

// AppendHistory adds one audit entry to the reservation history.
func (s *ReservationService) AppendHistory(ctx context.Context, id uuid.UUID, entry model.HistoryEntry, principal model.Principal) (*model.Reservation, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	entry.Type = strings.TrimSpace(entry.Type)
	entry.Description = strings.TrimSpace(entry.Description)
	if entry.Type == "" || entry.Description == "" {
		return nil, fmt.Errorf("%w: history type and description are required", ErrInvalidInput)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	history := append(append([]model.HistoryEntry{}, current.History...), entry)
	return s.Update(ctx, id, model.ReservationPatch{History: model.Some(history)}, principal)
}

func (s *ReservationService) Delete(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *ReservationService) load(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	res, err := repository.DecodeReservation(*rec)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func redactFor(principal model.Principal, res *model.Reservation) *model.Reservation {
	if principal.IsAdmin() || res.AreAssignmentsVisibleToUser {
		return res
	}
	redacted := *res
	redacted.AssignedGuide = nil
	redacted.DailyAccommodations = nil
	return &redacted
}

func validateCreate(input CreateReservationInput) error {
	switch {
	case input.ProductName == "":
		return fmt.Errorf("%w: productName is required", ErrInvalidInput)
	case input.CustomerName == "":
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	case input.TotalPeople < 1:
		return fmt.Errorf("%w: totalPeople must be at least 1", ErrInvalidInput)
	case input.TotalAmount < 0 || input.Deposit < 0 || input.Balance < 0:
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	case !input.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, input.Type)
	case !input.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	case !input.DepositStatus.Valid() || !input.BalanceStatus.Valid():
		return fmt.Errorf("%w: payment status must be unpaid or paid", ErrInvalidInput)
	}
	return nil
}

func validatePatch(patch model.ReservationPatch) error {
	if patch.Type != nil && !patch.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, *patch.Type)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
	}
	if patch.DepositStatus != nil && !patch.DepositStatus.Valid() {
		return fmt.Errorf("%w: unknown depositStatus %q", ErrInvalidInput, *patch.DepositStatus)
	}
	if patch.BalanceStatus != nil && !patch.BalanceStatus.Valid() {
		return fmt.Errorf("%w: unknown balanceStatus %q", ErrInvalidInput, *patch.BalanceStatus)
	}
	if patch.ProductName != nil && strings.TrimSpace(*patch.ProductName) == "" {
		return fmt.Errorf("%w: productName must not be empty", ErrInvalidInput)
	}
	if patch.CustomerName != nil && strings.TrimSpace(*patch.CustomerName) == "" {
		return fmt.Errorf("%w: customerName must not be empty", ErrInvalidInput)
	}
	if patch.TotalPeople != nil && *patch.TotalPeople < 1 {
		return fmt.Errorf("%w: totalPeople must be at least 1", ErrInvalidInput)
	}
	for _, amount := range []*int64{patch.TotalAmount, patch.Deposit, patch.Balance} {
		if amount != nil && *amount < 0 {
			return fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
		}
	}
	return nil
}
