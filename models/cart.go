package models

import (
	"github.com/stripe/stripe-go/v79"
)

// SelectedOption 代表商品的單一變體選項，例如 {Size, M}
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CartLine 代表購物車中的單個商品項目。
// 商品身份由 ProductID 加上 SelectedOptions 的嚴格順序比較決定。
type CartLine struct {
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	Image           []string         `json:"image,omitempty"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty"`
	Quantity        uint64           `json:"quantity"`
	UnitPrice       float64          `json:"unit_price"`
	FinalUnitPrice  float64          `json:"final_unit_price"`
	Currency        stripe.Currency  `json:"currency,omitempty"`
}

// OptionsEqual reports whether two option selections denote the same identity.
// The comparison is strict and order-sensitive: same length and pairwise equal
// name/value at every index. Reordering the same options yields a different
// identity; callers upstream always send options in catalog order, so the
// strict form is kept.
func OptionsEqual(a, b []SelectedOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// SameIdentity reports whether the line refers to the same purchasable
// configuration as (productID, options).
func (l *CartLine) SameIdentity(productID string, options []SelectedOption) bool {
	return l.ProductID == productID && OptionsEqual(l.SelectedOptions, options)
}

// LineSubtotal 計算單行小計
func (l *CartLine) LineSubtotal() float64 {
	return l.FinalUnitPrice * float64(l.Quantity)
}
