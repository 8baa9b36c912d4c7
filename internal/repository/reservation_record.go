package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/tourbook/internal/model"
)

// ReservationRecord is the storage form of a reservation. Sub-documents are
// JSON text columns; nil means the column is NULL.
type ReservationRecord struct {
	ID                          uuid.UUID `gorm:"primaryKey"`
	Type                        string
	Status                      string
	ProductName                 string
	UserID                      *uuid.UUID
	CustomerName                string
	Email                       string
	Phone                       string
	Date                        string
	Headcount                   string
	TotalPeople                 int
	TotalAmount                 int64
	Deposit                     int64
	DepositStatus               string
	Balance                     int64
	BalanceStatus               string
	AssignedGuide               *string
	DailyAccommodations         *string
	History                     *string
	AreAssignmentsVisibleToUser bool
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

func (ReservationRecord) TableName() string {
	return "reservations"
}

func EncodeReservation(res model.Reservation) (ReservationRecord, error) {
	guide, err := encodeDocument(res.AssignedGuide)
	if err != nil {
		return ReservationRecord{}, fmt.Errorf("encode assignedGuide: %w", err)
	}
	accommodations, err := encodeDocument(slicePtr(res.DailyAccommodations))
	if err != nil {
		return ReservationRecord{}, fmt.Errorf("encode dailyAccommodations: %w", err)
	}
	history, err := encodeDocument(slicePtr(res.History))
	if err != nil {
		return ReservationRecord{}, fmt.Errorf("encode history: %w", err)
	}

	return ReservationRecord{
		ID:                          res.ID,
		Type:                        string(res.Type),
		Status:                      string(res.Status),
		ProductName:                 res.ProductName,
		UserID:                      res.UserID,
		CustomerName:                res.CustomerName,
		Email:                       res.Email,
		Phone:                       res.Phone,
		Date:                        res.Date,
		Headcount:                   res.Headcount,
		TotalPeople:                 res.TotalPeople,
		TotalAmount:                 res.TotalAmount,
		Deposit:                     res.Deposit,
		DepositStatus:               string(res.DepositStatus),
		Balance:                     res.Balance,
		BalanceStatus:               string(res.BalanceStatus),
		AssignedGuide:               guide,
		DailyAccommodations:         accommodations,
		History:                     history,
		AreAssignmentsVisibleToUser: res.AreAssignmentsVisibleToUser,
		CreatedAt:                   res.CreatedAt,
		UpdatedAt:                   res.UpdatedAt,
	}, nil
}

func DecodeReservation(rec ReservationRecord) (model.Reservation, error) {
	guide, err := decodeDocument[model.Guide](rec.AssignedGuide)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("decode assigned_guide of %s: %w", rec.ID, err)
	}
	accommodations, err := decodeDocument[[]model.DailyAccommodation](rec.DailyAccommodations)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("decode daily_accommodations of %s: %w", rec.ID, err)
	}
	history, err := decodeDocument[[]model.HistoryEntry](rec.History)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("decode history of %s: %w", rec.ID, err)
	}

	res := model.Reservation{
		ID:                          rec.ID,
		Type:                        model.ReservationType(rec.Type),
		Status:                      model.ReservationStatus(rec.Status),
		ProductName:                 rec.ProductName,
		UserID:                      rec.UserID,
		CustomerName:                rec.CustomerName,
		Email:                       rec.Email,
		Phone:                       rec.Phone,
		Date:                        rec.Date,
		Headcount:                   rec.Headcount,
		TotalPeople:                 rec.TotalPeople,
		TotalAmount:                 rec.TotalAmount,
		Deposit:                     rec.Deposit,
		DepositStatus:               model.PaymentStatus(rec.DepositStatus),
		Balance:                     rec.Balance,
		BalanceStatus:               model.PaymentStatus(rec.BalanceStatus),
		AssignedGuide:               guide,
		AreAssignmentsVisibleToUser: rec.AreAssignmentsVisibleToUser,
		CreatedAt:                   rec.CreatedAt,
		UpdatedAt:                   rec.UpdatedAt,
	}
	if accommodations != nil {
		res.DailyAccommodations = *accommodations
	}
	if history != nil {
		res.History = *history
	}
	return res, nil
}

// PatchColumns converts a patch into the column map handed to gorm. Raw
// sub-document objects never reach the map, only their encoded text.
func PatchColumns(patch model.ReservationPatch, now time.Time) (map[string]interface{}, error) {
	columns := map[string]interface{}{"updated_at": now}

	if patch.Type != nil {
		columns["type"] = string(*patch.Type)
	}
	if patch.Status != nil {
		columns["status"] = string(*patch.Status)
	}
	if patch.ProductName != nil {
		columns["product_name"] = *patch.ProductName
	}
	if patch.CustomerName != nil {
		columns["customer_name"] = *patch.CustomerName
	}
	if patch.Email != nil {
		columns["email"] = *patch.Email
	}
	if patch.Phone != nil {
		columns["phone"] = *patch.Phone
	}
	if patch.Date != nil {
		columns["date"] = *patch.Date
	}
	if patch.Headcount != nil {
		columns["headcount"] = *patch.Headcount
	}
	if patch.TotalPeople != nil {
		columns["total_people"] = *patch.TotalPeople
	}
	if patch.TotalAmount != nil {
		columns["total_amount"] = *patch.TotalAmount
	}
	if patch.Deposit != nil {
		columns["deposit"] = *patch.Deposit
	}
	if patch.DepositStatus != nil {
		columns["deposit_status"] = string(*patch.DepositStatus)
	}
	if patch.Balance != nil {
		columns["balance"] = *patch.Balance
	}
	if patch.BalanceStatus != nil {
		columns["balance_status"] = string(*patch.BalanceStatus)
	}
	if patch.AreAssignmentsVisibleToUser != nil {
		columns["are_assignments_visible_to_user"] = *patch.AreAssignmentsVisibleToUser
	}

	if patch.AssignedGuide.Set {
		encoded, err := encodeDocument(patch.AssignedGuide.Value)
		if err != nil {
			return nil, fmt.Errorf("encode assignedGuide: %w", err)
		}
		columns["assigned_guide"] = nullableText(encoded)
	}
	if patch.DailyAccommodations.Set {
		encoded, err := encodeDocument(nilIfEmptyPtr(patch.DailyAccommodations.Value))
		if err != nil {
			return nil, fmt.Errorf("encode dailyAccommodations: %w", err)
		}
		columns["daily_accommodations"] = nullableText(encoded)
	}
	if patch.History.Set {
		encoded, err := encodeDocument(nilIfEmptyPtr(patch.History.Value))
		if err != nil {
			return nil, fmt.Errorf("encode history: %w", err)
		}
		columns["history"] = nullableText(encoded)
	}
	return columns, nil
}

func encodeDocument[T any](value *T) (*string, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	text := string(raw)
	return &text, nil
}

func decodeDocument[T any](raw *string) (*T, error) {
	if raw == nil || *raw == "" || *raw == "null" {
		return nil, nil
	}
	var value T
	if err := json.Unmarshal([]byte(*raw), &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func slicePtr[T any](items []T) *[]T {
	if items == nil {
		return nil
	}
	return &items
}

// nilIfEmptyPtr maps a pointer to a nil slice onto nil so it stores as NULL.
func nilIfEmptyPtr[T any](items *[]T) *[]T {
	if items == nil || *items == nil {
		return nil
	}
	return items
}

func nullableText(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
