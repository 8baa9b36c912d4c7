package pricing

import (
	"fmt"

	"github.com/nurpe/tourbook/internal/model"
)

// Compose prices a headcount on a tier with optional add-ons. Add-on deltas
// move Total only; Deposit and Local stay tier based.
func Compose(tier model.PricingTier, totalPeople int, accommodation, vehicle *model.Option) model.PriceBreakdown {
	people := int64(totalPeople)
	if people < 0 {
		people = 0
	}

	var addons int64
	if accommodation != nil {
		addons += accommodation.PriceModifier
	}
	if vehicle != nil {
		addons += vehicle.PriceModifier
	}

	breakdown := model.PriceBreakdown{
		Tier:    tier,
		Total:   tier.PricePerPerson*people + addons,
		Deposit: tier.DepositPerPerson * people,
		Local:   tier.LocalPaymentPerPerson * people,
	}
	if breakdown.Total < 0 {
		breakdown.Warnings = append(breakdown.Warnings,
			fmt.Sprintf("add-on discounts exceed the base price by %d; total clamped to 0", -breakdown.Total))
		breakdown.Total = 0
	}
	return breakdown
}

// Quote resolves the tier for totalPeople and composes the breakdown.
func Quote(tiers []model.PricingTier, totalPeople int, accommodation, vehicle *model.Option) (model.PriceBreakdown, error) {
	tier, err := Resolve(tiers, totalPeople)
	if err != nil {
		return model.PriceBreakdown{}, err
	}
	return Compose(tier, totalPeople, accommodation, vehicle), nil
}
