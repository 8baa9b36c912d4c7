package pricing

import (
	"regexp"
	"strconv"

	"github.com/nurpe/tourbook/internal/model"
)

const (
	DefaultDepositPercent int64 = 10
	DefaultHeadcount            = 2
)

var digitRuns = regexp.MustCompile(`\d+`)

// CountTravelers sums every number in a free text traveler description,
// e.g. "성인 3명, 아동 3명" counts 6. Text without a positive count yields
// fallback.
func CountTravelers(text string, fallback int) int {
	matches := digitRuns.FindAllString(text, -1)
	if len(matches) == 0 {
		return fallback
	}
	total := 0
	for _, match := range matches {
		n, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		total += n
	}
	if total < 1 {
		return fallback
	}
	return total
}

// Bridge turns a priced quote into reservation creation input. An explicit
// deposit, zero included, wins over the percentage policy.
func Bridge(quote model.Quote, depositPercent int64, fallbackHeadcount int) model.ReservationDraft {
	var price int64
	if quote.ConfirmedPrice != nil {
		price = *quote.ConfirmedPrice
	}

	deposit := price * depositPercent / 100
	if quote.Deposit != nil {
		deposit = *quote.Deposit
	}

	return model.ReservationDraft{
		QuoteID:             quote.ID,
		UserID:              quote.UserID,
		ProductName:         quote.Destination,
		CustomerName:        quote.CustomerName,
		Email:               quote.Email,
		Phone:               quote.Phone,
		Date:                quote.TravelDates,
		Headcount:           quote.Travelers,
		TotalPeopleCount:    CountTravelers(quote.Travelers, fallbackHeadcount),
		ConfirmedTotalPrice: price,
		DepositAmount:       deposit,
		LocalAmount:         price - deposit,
	}
}
