package models

import "fmt"

// BedCategory identifies one of the four recognized bed kinds.
type BedCategory string

const (
	BedNormal     BedCategory = "normal"
	BedHICU       BedCategory = "hicu"
	BedICU        BedCategory = "icu"
	BedVentilator BedCategory = "ventilator"
)

// BedCategories lists every recognized category in display order.
var BedCategories = []BedCategory{BedNormal, BedHICU, BedICU, BedVentilator}

// ParseBedCategory validates a client-supplied bed type string.
// Accepts the canonical lowercase names only.
func ParseBedCategory(s string) (BedCategory, error) {
	switch BedCategory(s) {
	case BedNormal, BedHICU, BedICU, BedVentilator:
		return BedCategory(s), nil
	}
	return "", fmt.Errorf("unknown bed category: %q", s)
}

// Column returns the hospitals table column holding this category's counter.
// The mapping is a fixed whitelist so category values can never reach SQL text
// unvalidated.
func (c BedCategory) Column() (string, error) {
	switch c {
	case BedNormal:
		return "normal_beds", nil
	case BedHICU:
		return "hicu_beds", nil
	case BedICU:
		return "icu_beds", nil
	case BedVentilator:
		return "ventilator_beds", nil
	}
	return "", fmt.Errorf("unknown bed category: %q", string(c))
}

func (c BedCategory) String() string {
	return string(c)
}
