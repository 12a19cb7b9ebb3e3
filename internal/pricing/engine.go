package pricing

import "fmt"

// Money represents a monetary value stored in minor units.
type Money = int64

// Params capture the checkout pricing rules applied on top of a cart subtotal.
type Params struct {
	// FreeShippingThreshold is the subtotal above which shipping is free.
	// The comparison is strict: a subtotal exactly at the threshold still pays.
	FreeShippingThreshold Money
	// FlatShippingFee is charged whenever the threshold is not exceeded.
	FlatShippingFee Money
	// TaxRateBps is the tax rate in basis points (800 = 8%).
	TaxRateBps int
}

// Quote is the payable breakdown derived from a cart subtotal.
type Quote struct {
	Subtotal Money `json:"subtotal"`
	Shipping Money `json:"shipping"`
	Tax      Money `json:"tax"`
	Payable  Money `json:"payable"`
}

// Shipping returns the shipping charge for the given subtotal.
func (p Params) Shipping(subtotal Money) Money {
	if subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingFee
}

// Tax returns the tax amount for the given subtotal.
func (p Params) Tax(subtotal Money) Money {
	if p.TaxRateBps <= 0 {
		return 0
	}
	return (subtotal * Money(p.TaxRateBps)) / 10000
}

// QuoteFor computes the full payable breakdown for a subtotal.
// A negative subtotal indicates a broken ledger invariant and panics.
func (p Params) QuoteFor(subtotal Money) Quote {
	if subtotal < 0 {
		panic(fmt.Sprintf("pricing: negative subtotal %d", subtotal))
	}
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Payable:  subtotal + shipping + tax,
	}
}
