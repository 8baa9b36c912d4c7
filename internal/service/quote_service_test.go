package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/tourbook/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestQuoteService(quotes ...model.Quote) (*QuoteService, *fakeQuoteStore, *fakeReservationStore) {
	store := &fakeQuoteStore{quotes: map[uuid.UUID]model.Quote{}, statuses: map[uuid.UUID]model.QuoteStatus{}}
	for _, quote := range quotes {
		store.quotes[quote.ID] = quote
	}
	reservations, reservationStore := newTestReservationService()
	return NewQuoteService(store, reservations, 10, 2), store, reservationStore
}

func answeredQuote(owner uuid.UUID) model.Quote {
	return model.Quote{
		ID:             uuid.New(),
		UserID:         owner,
		Status:         model.QuoteStatusAnswered,
		Destination:    "Khuvsgul lake",
		TravelDates:    "2025-08-01 ~ 2025-08-05",
		Travelers:      "성인 2명, 아동 1명",
		CustomerName:   "Lee",
		Email:          "lee@example.com",
		ConfirmedPrice: int64Ptr(300000),
	}
}

func TestQuoteDraft(t *testing.T) {
	owner := model.Principal{UserID: uuid.New(), Role: model.RoleUser}
	quote := answeredQuote(owner.UserID)
	svc, _, _ := newTestQuoteService(quote)

	draft, err := svc.Draft(context.Background(), quote.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, draft.TotalPeopleCount)
	assert.Equal(t, int64(30000), draft.DepositAmount)
	assert.Equal(t, int64(270000), draft.LocalAmount)

	_, err = svc.Draft(context.Background(), quote.ID, model.Principal{UserID: uuid.New(), Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Draft(context.Background(), uuid.New(), adminPrincipal)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteDraftRequiresAnsweredQuote(t *testing.T) {
	quote := answeredQuote(uuid.New())
	quote.Status = model.QuoteStatusProcessing
	svc, _, _ := newTestQuoteService(quote)

	_, err := svc.Draft(context.Background(), quote.ID, adminPrincipal)
	assert.ErrorIs(t, err, ErrQuoteNotReady)
}

func TestQuoteConvert(t *testing.T) {
	owner := model.Principal{UserID: uuid.New(), Role: model.RoleUser}
	quote := answeredQuote(owner.UserID)
	quote.Deposit = int64Ptr(0)
	svc, quotes, reservations := newTestQuoteService(quote)

	res, err := svc.Convert(context.Background(), quote.ID, owner)
	require.NoError(t, err)

	assert.Equal(t, model.ReservationTypeQuote, res.Type)
	assert.Equal(t, model.ReservationStatusPendingPayment, res.Status)
	assert.Equal(t, "Khuvsgul lake", res.ProductName)
	assert.Equal(t, 3, res.TotalPeople)
	assert.Equal(t, int64(300000), res.TotalAmount)
	assert.Equal(t, int64(0), res.Deposit)
	assert.Equal(t, int64(300000), res.Balance)
	require.NotNil(t, res.UserID)
	assert.Equal(t, owner.UserID, *res.UserID)
	require.Len(t, res.History, 1)
	assert.Equal(t, quote.ID.String(), res.History[0].Detail)

	assert.Contains(t, reservations.rows, res.ID)
	assert.Equal(t, model.QuoteStatusConverted, quotes.statuses[quote.ID])
}

func TestQuoteDraftWithZeroDepositPolicy(t *testing.T) {
	quote := answeredQuote(uuid.New())
	store := &fakeQuoteStore{quotes: map[uuid.UUID]model.Quote{quote.ID: quote}, statuses: map[uuid.UUID]model.QuoteStatus{}}
	reservations, _ := newTestReservationService()
	svc := NewQuoteService(store, reservations, 0, 2)

	draft, err := svc.Draft(context.Background(), quote.ID, adminPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(0), draft.DepositAmount)
	assert.Equal(t, int64(300000), draft.LocalAmount)
}

func TestQuoteConvertWithZeroTravelers(t *testing.T) {
	owner := model.Principal{UserID: uuid.New(), Role: model.RoleUser}
	quote := answeredQuote(owner.UserID)
	quote.Travelers = "성인 0명"
	svc, _, _ := newTestQuoteService(quote)

	res, err := svc.Convert(context.Background(), quote.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPeople)
}
