package model

import (
	"time"

	"github.com/google/uuid"
)

type QuoteStatus string

const (
	QuoteStatusPending              QuoteStatus = "pending"
	QuoteStatusProcessing           QuoteStatus = "processing"
	QuoteStatusAnswered             QuoteStatus = "answered"
	QuoteStatusReservationRequested QuoteStatus = "reservation_requested"
	QuoteStatusConverted            QuoteStatus = "converted"
)

// Bookable reports whether an admin has priced the quote and it has not been
// turned into a reservation yet.
func (s QuoteStatus) Bookable() bool {
	return s == QuoteStatusAnswered || s == QuoteStatusReservationRequested
}

type Quote struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"userId"`
	Status         QuoteStatus `json:"status"`
	Destination    string      `json:"destination"`
	TravelDates    string      `json:"travelDates"`
	Travelers      string      `json:"travelers"`
	CustomerName   string      `json:"customerName"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	ConfirmedPrice *int64      `json:"confirmedPrice,omitempty"`
	Deposit        *int64      `json:"deposit,omitempty"`
	AdminNote      *string     `json:"adminNote,omitempty"`
	EstimateURL    *string     `json:"estimateUrl,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ReservationDraft is a quote reshaped into reservation creation input.
type ReservationDraft struct {
	QuoteID             uuid.UUID `json:"quoteId"`
	UserID              uuid.UUID `json:"userId"`
	ProductName         string    `json:"productName"`
	CustomerName        string    `json:"customerName"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Date                string    `json:"date"`
	Headcount           string    `json:"headcount"`
	TotalPeopleCount    int       `json:"totalPeopleCount"`
	ConfirmedTotalPrice int64     `json:"confirmedTotalPrice"`
	DepositAmount       int64     `json:"depositAmount"`
	LocalAmount         int64     `json:"localAmount"`
}
