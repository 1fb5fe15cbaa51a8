// Package checkout derives the monetary breakdown for the current cart and
// assembles the order submission document. It owns no state: every function
// is pure over (cart snapshot, shipping method, promo code, form).
package checkout

import (
	"gofalre.io/storefront/models"
	"gofalre.io/storefront/models/enum"
)

// UnitTax is the flat per-unit surcharge applied per item quantity. The tax
// rule is intentionally not percentage-based: tax = UnitTax * total quantity.
const UnitTax = 3.0

// shippingFees maps a shipping-method tag to its fixed fee. Unrecognized or
// unset tags ship for free.
var shippingFees = map[enum.ShippingMethod]float64{
	enum.ShippingMethodFedex: 32,
	enum.ShippingMethodDHL:   15,
}

// Options tunes aggregator behaviour.
type Options struct {
	// ClampTotal floors a negative grand total (discount exceeding
	// subtotal+tax+shipping) at zero. Off by default: whether an
	// over-discounted order may go negative is a business-rule decision
	// left to the caller.
	ClampTotal bool
}

// ShippingFee returns the fixed fee for the given shipping-method tag.
func ShippingFee(method enum.ShippingMethod) float64 {
	return shippingFees[method]
}

// ComputeTotals derives subtotal, tax, shipping cost and grand total for the
// given lines.
//
//	subtotal = Σ finalUnitPrice × quantity
//	tax      = UnitTax × Σ quantity
//	total    = subtotal + tax + shipping − discount
func ComputeTotals(lines []models.CartLine, method enum.ShippingMethod, discount float64, opts Options) models.Totals {
	var subtotal float64
	var quantity uint64

	for i := range lines {
		subtotal += lines[i].LineSubtotal()
		quantity += lines[i].Quantity
	}

	totals := models.Totals{
		Subtotal:     subtotal,
		Tax:          UnitTax * float64(quantity),
		ShippingCost: ShippingFee(method),
		Discount:     discount,
	}
	totals.Total = totals.Subtotal + totals.Tax + totals.ShippingCost - discount

	if opts.ClampTotal && totals.Total < 0 {
		totals.Total = 0
	}

	return totals
}
