package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/tourbook/internal/model"
	"github.com/nurpe/tourbook/internal/pricing"
)

type QuoteStore interface {
	GetQuote(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status model.QuoteStatus) error
}

type QuoteService struct {
	store             QuoteStore
	reservations      *ReservationService
	depositPercent    int64
	fallbackHeadcount int
}

func NewQuoteService(store QuoteStore, reservations *ReservationService, depositPercent int64, fallbackHeadcount int) *QuoteService {
	if depositPercent < 0 || depositPercent > 100 {
		depositPercent = pricing.DefaultDepositPercent
	}
	if fallbackHeadcount <= 0 {
		fallbackHeadcount = pricing.DefaultHeadcount
	}
	return &QuoteService{
		store:             store,
		reservations:      reservations,
		depositPercent:    depositPercent,
		fallbackHeadcount: fallbackHeadcount,
	}
}

// Draft bridges an answered quote into reservation input without persisting.
func (s *QuoteService) Draft(ctx context.Context, quoteID uuid.UUID, principal model.Principal) (*model.ReservationDraft, error) {
	quote, err := s.store.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.IsAdmin() && quote.UserID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if !quote.Status.Bookable() {
		return nil, fmt.Errorf("%w: status is %s", ErrQuoteNotReady, quote.Status)
	}

	draft := pricing.Bridge(*quote, s.depositPercent, s.fallbackHeadcount)
	return &draft, nil
}

// Convert books a quote: the draft goes through the regular creation path
// and the quote is marked converted afterwards.
func (s *QuoteService) Convert(ctx context.Context, quoteID uuid.UUID, principal model.Principal) (*model.Reservation, error) {
	draft, err := s.Draft(ctx, quoteID, principal)
	if err != nil {
		return nil, err
	}

	owner := draft.UserID
	res, err := s.reservations.create(ctx, CreateReservationInput{
		Type:         model.ReservationTypeQuote,
		ProductName:  draft.ProductName,
		UserID:       &owner,
		CustomerName: draft.CustomerName,
		Email:        draft.Email,
		Phone:        draft.Phone,
		Date:         draft.Date,
		Headcount:    draft.Headcount,
		TotalPeople:  draft.TotalPeopleCount,
		TotalAmount:  draft.ConfirmedTotalPrice,
		Deposit:      draft.DepositAmount,
		Balance:      draft.LocalAmount,
		History: []model.HistoryEntry{{
			Timestamp:   s.reservations.now(),
			Type:        "created",
			Description: "converted from quote",
			Detail:      draft.QuoteID.String(),
		}},
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateQuoteStatus(ctx, quoteID, model.QuoteStatusConverted); err != nil {
		return nil, err
	}
	return res, nil
}
