// Package pricing derives the quote breakdown from cart contents.
//
// The math intentionally runs on float64 without intermediate rounding:
// downstream consumers round for display only, and the accumulated drift is
// part of the contract with the storefront UI.
package pricing

import "fmt"

// Item describes a line item used for the breakdown calculation.
type Item struct {
	Qty       int
	UnitPrice float64
}

// Rates holds the pricing policy knobs.
type Rates struct {
	// DiscountRate is the flat contractor discount applied to every cart.
	// Per-product volume tiers are display-only and never feed into totals.
	DiscountRate float64
	// TaxRate applies to subtotal minus discount plus delivery fee.
	TaxRate float64
	// DeliveryFee is charged unless the subtotal strictly exceeds
	// FreeDeliveryThreshold.
	DeliveryFee           float64
	FreeDeliveryThreshold float64
}

// DefaultRates returns the storefront's standard pricing policy.
func DefaultRates() Rates {
	return Rates{
		DiscountRate:          0.15,
		TaxRate:               0.0825,
		DeliveryFee:           75,
		FreeDeliveryThreshold: 500,
	}
}

// Breakdown aggregates the computed pricing components.
type Breakdown struct {
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	DeliveryFee   float64 `json:"deliveryFee"`
	TaxableAmount float64 `json:"taxableAmount"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
}

// Compute calculates the quote breakdown. Pure: the same items and rates
// always yield the same breakdown, and nothing is cached or mutated.
func Compute(items []Item, rates Rates) Breakdown {
	var subtotal float64
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += it.UnitPrice * float64(it.Qty)
	}

	discount := subtotal * rates.DiscountRate

	deliveryFee := rates.DeliveryFee
	if subtotal > rates.FreeDeliveryThreshold {
		deliveryFee = 0
	}

	taxable := subtotal - discount + deliveryFee
	tax := taxable * rates.TaxRate

	return Breakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		DeliveryFee:   deliveryFee,
		TaxableAmount: taxable,
		Tax:           tax,
		Total:         subtotal - discount + deliveryFee + tax,
	}
}

// FormatUSD renders an amount rounded to two decimals for display.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
