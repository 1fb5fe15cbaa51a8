package models

import (
	"time"

	"github.com/stripe/stripe-go/v79"

	"gofalre.io/storefront/models/enum"
)

// Address 代表帳單或收貨地址
type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// CheckoutForm carries the customer-entered fields collected at checkout.
// Validation happens upstream; this core assumes the form is already valid.
type CheckoutForm struct {
	UserID    string `json:"user_id,omitempty"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Billing Address `json:"billing"`

	// UseShippingAddress selects Shipping as the ship-to address; otherwise
	// the billing address is shipped to.
	UseShippingAddress bool    `json:"use_shipping_address"`
	Shipping           Address `json:"shipping"`

	BillingMethod   enum.ShippingMethod `json:"billing_method"`
	PaymentMethod   enum.PaymentMethod  `json:"payment_method"`
	StripePaymentID string              `json:"stripe_payment_id,omitempty"`
	Notes           string              `json:"notes,omitempty"`
}

// ShipTo returns the address the order ships to.
func (f *CheckoutForm) ShipTo() Address {
	if f.UseShippingAddress {
		return f.Shipping
	}
	return f.Billing
}

// Totals 代表結帳時計算出的金額明細
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	ShippingCost float64 `json:"shipping_cost"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// OrderProduct 代表訂單中的單個商品記錄
type OrderProduct struct {
	Product   string           `json:"product"`
	Name      string           `json:"name"`
	Image     string           `json:"image,omitempty"`
	Price     float64          `json:"price"`
	Quantity  uint64           `json:"quantity"`
	Variation []SelectedOption `json:"variation,omitempty"`
}

// OrderSubmission is the document handed to the external order API. It is
// assembled at checkout and not persisted by this core after submission.
type OrderSubmission struct {
	IdempotencyKey string `json:"idempotency_key"`
	UserID         string `json:"userId,omitempty"`

	Products        []OrderProduct `json:"products"`
	ShippingAddress Address        `json:"shippingAddress"`

	BillingMethod   enum.ShippingMethod `json:"billingMethod"`
	PaymentMethod   enum.PaymentMethod  `json:"paymentMethod"`
	StripePaymentID string              `json:"stripePaymentId,omitempty"`

	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`

	Currency     stripe.Currency `json:"currency,omitempty"`
	Subtotal     float64         `json:"subtotal"`
	Tax          float64         `json:"tax"`
	ShippingCost float64         `json:"shippingCost"`
	Discount     float64         `json:"discount,omitempty"`
	TotalAmount  float64         `json:"totalAmount"`

	Notes string `json:"notes"`
}

// OrderConfirmation 代表外部訂單服務回傳的確認資訊
type OrderConfirmation struct {
	OrderNumber string    `json:"order_number"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
