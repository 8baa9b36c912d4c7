package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationType string

const (
	ReservationTypeProduct ReservationType = "product"
	ReservationTypeHotel   ReservationType = "hotel"
	ReservationTypeVehicle ReservationType = "vehicle"
	ReservationTypeGuide   ReservationType = "guide"
	ReservationTypeQuote   ReservationType = "quote"
)

func (t ReservationType) Valid() bool {
	switch t {
	case ReservationTypeProduct, ReservationTypeHotel, ReservationTypeVehicle, ReservationTypeGuide, ReservationTypeQuote:
		return true
	default:
		return false
	}
}

type ReservationStatus string

const (
	ReservationStatusPendingPayment ReservationStatus = "pending_payment"
	ReservationStatusConfirmed      ReservationStatus = "confirmed"
	ReservationStatusCancelled      ReservationStatus = "cancelled"
	ReservationStatusCompleted      ReservationStatus = "completed"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPendingPayment: {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:      {ReservationStatusCompleted, ReservationStatusCancelled},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPendingPayment, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	default:
		return false
	}
}

func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCompleted
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Staying in the same status is always allowed.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}

type Guide struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Note  string `json:"note,omitempty"`
}

type DailyAccommodation struct {
	Day     int    `json:"day"`
	Date    string `json:"date,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Note    string `json:"note,omitempty"`
}

type HistoryEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Detail      string    `json:"detail,omitempty"`
}

// Reservation is the decoded, wire facing form of a booking. Nil
// AssignedGuide, DailyAccommodations or History mean the sub-document is
// absent, which is different from an empty list.
type Reservation struct {
	ID                          uuid.UUID            `json:"id"`
	Type                        ReservationType      `json:"type"`
	Status                      ReservationStatus    `json:"status"`
	ProductName                 string               `json:"productName"`
	UserID                      *uuid.UUID           `json:"userId,omitempty"`
	CustomerName                string               `json:"customerName"`
	Email                       string               `json:"email"`
	Phone                       string               `json:"phone"`
	Date                        string               `json:"date"`
	Headcount                   string               `json:"headcount"`
	TotalPeople                 int                  `json:"totalPeople"`
	TotalAmount                 int64                `json:"totalAmount"`
	Deposit                     int64                `json:"deposit"`
	DepositStatus               PaymentStatus        `json:"depositStatus"`
	Balance                     int64                `json:"balance"`
	BalanceStatus               PaymentStatus        `json:"balanceStatus"`
	AssignedGuide               *Guide               `json:"assignedGuide,omitzero"`
	DailyAccommodations         []DailyAccommodation `json:"dailyAccommodations,omitzero"`
	History                     []HistoryEntry       `json:"history,omitzero"`
	AreAssignmentsVisibleToUser bool                 `json:"areAssignmentsVisibleToUser"`
	CreatedAt                   time.Time            `json:"createdAt"`
	UpdatedAt                   time.Time            `json:"updatedAt"`
}

// ReservationPatch is a partial update. Nil pointers and unset Nullable
// fields are left untouched.
type ReservationPatch struct {
	Type                        *ReservationType               `json:"type"`
	Status                      *ReservationStatus             `json:"status"`
	ProductName                 *string                        `json:"productName"`
	CustomerName                *string                        `json:"customerName"`
	Email                       *string                        `json:"email"`
	Phone                       *string                        `json:"phone"`
	Date                        *string                        `json:"date"`
	Headcount                   *string                        `json:"headcount"`
	TotalPeople                 *int                           `json:"totalPeople"`
	TotalAmount                 *int64                         `json:"totalAmount"`
	Deposit                     *int64                         `json:"deposit"`
	DepositStatus               *PaymentStatus                 `json:"depositStatus"`
	Balance                     *int64                         `json:"balance"`
	BalanceStatus               *PaymentStatus                 `json:"balanceStatus"`
	AssignedGuide               Nullable[Guide]                `json:"assignedGuide"`
	DailyAccommodations         Nullable[[]DailyAccommodation] `json:"dailyAccommodations"`
	History                     Nullable[[]HistoryEntry]       `json:"history"`
	AreAssignmentsVisibleToUser *bool                          `json:"areAssignmentsVisibleToUser"`
}

type Page struct {
	Limit  int
	Offset int
}
