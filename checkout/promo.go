package checkout

import (
	"errors"
	"strings"
)

// ErrPromoNotFound signals an unrecognized promo code. It is a recoverable
// outcome: the caller shows "invalid code" and continues with zero discount.
var ErrPromoNotFound = errors.New("promo code not found")

// PromoTable maps an uppercase promo code to its flat discount amount.
//
// The table is a synchronous local lookup for compatibility with the existing
// checkout contract. Production deployments should validate codes against the
// order service instead and inject the result here.
type PromoTable map[string]float64

// DefaultPromoTable carries the codes the storefront currently honours.
var DefaultPromoTable = PromoTable{
	"SAVE10":    10,
	"DISCOUNT5": 5,
}

// Apply looks up the code (trimmed, case-insensitive) and returns its flat
// discount. Unknown codes return 0 and ErrPromoNotFound.
func (t PromoTable) Apply(code string) (float64, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	discount, ok := t[normalized]
	if !ok {
		return 0, ErrPromoNotFound
	}
	return discount, nil
}
