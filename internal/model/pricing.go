package model

import "github.com/google/uuid"

type OptionCategory string

const (
	OptionCategoryAccommodation OptionCategory = "accommodation"
	OptionCategoryVehicle       OptionCategory = "vehicle"
)

// PricingTier is one headcount bracket of a product. All amounts are per
// person in the smallest currency unit.
type PricingTier struct {
	PeopleCount           int   `json:"peopleCount"`
	PricePerPerson        int64 `json:"pricePerPerson"`
	DepositPerPerson      int64 `json:"depositPerPerson"`
	LocalPaymentPerPerson int64 `json:"localPaymentPerPerson"`
}

// Option is an accommodation or vehicle add-on. PriceModifier is a signed
// delta applied once to the total, not per person.
type Option struct {
	ID            string         `json:"id"`
	Category      OptionCategory `json:"category"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	PriceModifier int64          `json:"priceModifier"`
	IsDefault     bool           `json:"isDefault"`
	ImageURL      *string        `json:"imageUrl,omitempty"`
}

type Product struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Tiers          []PricingTier `json:"tiers"`
	Accommodations []Option      `json:"accommodations"`
	Vehicles       []Option      `json:"vehicles"`
}

func (p Product) Options(category OptionCategory) []Option {
	switch category {
	case OptionCategoryAccommodation:
		return p.Accommodations
	case OptionCategoryVehicle:
		return p.Vehicles
	default:
		return nil
	}
}

// PriceBreakdown is the composed price for a headcount and option selection.
// Deposit and Local are tier based only, so Deposit+Local may differ from
// Total when add-ons are selected.
type PriceBreakdown struct {
	Tier     PricingTier `json:"tier"`
	Total    int64       `json:"total"`
	Deposit  int64       `json:"deposit"`
	Local    int64       `json:"local"`
	Warnings []string    `json:"warnings,omitempty"`
}
