package pricing

import (
	"errors"
	"sort"

	"github.com/nurpe/tourbook/internal/model"
)

var (
	ErrNoPricingData = errors.New("no pricing data")
	ErrUnknownOption = errors.New("unknown option")
)

// Resolve picks the tier for a headcount: the tier with the greatest
// PeopleCount not above requested, clamped to the smallest and largest tier.
// Among tiers sharing a PeopleCount the first one in input order wins.
func Resolve(tiers []model.PricingTier, requested int) (model.PricingTier, error) {
	if len(tiers) == 0 {
		return model.PricingTier{}, ErrNoPricingData
	}

	sorted := make([]model.PricingTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PeopleCount < sorted[j].PeopleCount
	})

	selected := sorted[0]
	for _, tier := range sorted[1:] {
		if tier.PeopleCount > requested {
			break
		}
		if tier.PeopleCount > selected.PeopleCount {
			selected = tier
		}
	}
	return selected, nil
}
