package pricing

import (
	"fmt"
	"strings"

	"github.com/nurpe/tourbook/internal/model"
)

const SelectNone = "none"

// MarkDefault returns a copy of options where optionID is the only default.
func MarkDefault(options []model.Option, optionID string) ([]model.Option, error) {
	result := make([]model.Option, len(options))
	found := false
	for i, option := range options {
		option.IsDefault = option.ID == optionID
		if option.IsDefault {
			found = true
		}
		result[i] = option
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	return result, nil
}

// DefaultOption returns the first option flagged as default, if any.
func DefaultOption(options []model.Option) *model.Option {
	for i := range options {
		if options[i].IsDefault {
			option := options[i]
			return &option
		}
	}
	return nil
}

// SelectOption maps a client selector onto an option: an empty selector
// falls back to the category default, "none" selects nothing.
func SelectOption(options []model.Option, selector string) (*model.Option, error) {
	selector = strings.TrimSpace(selector)
	switch {
	case selector == "":
		return DefaultOption(options), nil
	case strings.EqualFold(selector, SelectNone):
		return nil, nil
	}
	for i := range options {
		if options[i].ID == selector {
			option := options[i]
			return &option, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownOption, selector)
}
