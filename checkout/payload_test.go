package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"gofalre.io/storefront/models"
	"gofalre.io/storefront/models/enum"
)

func sampleForm() *models.CheckoutForm {
	return &models.CheckoutForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
		Billing: models.Address{
			Address: "12 Analytical St",
			City:    "London",
			Country: "UK",
			Zip:     "N1",
		},
		BillingMethod: enum.ShippingMethodFedex,
		PaymentMethod: enum.PaymentMethodCOD,
		Notes:         "leave at the door",
	}
}

func TestBuildOrderPayloadProducts(t *testing.T) {
	lines := []models.CartLine{
		{
			ProductID:       "p1",
			Name:            "Shirt",
			Image:           []string{"/img/shirt-front.jpg", "/img/shirt-back.jpg"},
			SelectedOptions: []models.SelectedOption{{Name: "Size", Value: "M"}},
			Quantity:        2,
			UnitPrice:       12,
			FinalUnitPrice:  10,
			Currency:        stripe.CurrencyUSD,
		},
	}
	totals := ComputeTotals(lines, enum.ShippingMethodFedex, 0, Options{})

	payload := BuildOrderPayload(lines, sampleForm(), totals)

	require.Len(t, payload.Products, 1)
	product := payload.Products[0]
	assert.Equal(t, "p1", product.Product)
	assert.Equal(t, "Shirt", product.Name)
	assert.Equal(t, "/img/shirt-front.jpg", product.Image, "only the first image is carried")
	assert.InDelta(t, 10.0, product.Price, 1e-9, "price is the final unit price")
	assert.Equal(t, uint64(2), product.Quantity)
	assert.Equal(t, lines[0].SelectedOptions, product.Variation)

	assert.Equal(t, stripe.CurrencyUSD, payload.Currency)
	assert.NotEmpty(t, payload.IdempotencyKey)
}

func TestBuildOrderPayloadTotalsAndCustomer(t *testing.T) {
	lines := []models.CartLine{{ProductID: "p1", FinalUnitPrice: 10, Quantity: 2}}
	totals := ComputeTotals(lines, enum.ShippingMethodDHL, 5, Options{})

	payload := BuildOrderPayload(lines, sampleForm(), totals)

	assert.InDelta(t, 20.0, payload.Subtotal, 1e-9)
	assert.InDelta(t, 6.0, payload.Tax, 1e-9)
	assert.InDelta(t, 15.0, payload.ShippingCost, 1e-9)
	assert.InDelta(t, 5.0, payload.Discount, 1e-9)
	assert.InDelta(t, 36.0, payload.TotalAmount, 1e-9)

	assert.Equal(t, "Ada", payload.FirstName)
	assert.Equal(t, "12 Analytical St", payload.Address)
	assert.Equal(t, enum.PaymentMethodCOD, payload.PaymentMethod)
	assert.Equal(t, "leave at the door", payload.Notes)
}

func TestBuildOrderPayloadShipToBillingByDefault(t *testing.T) {
	form := sampleForm()
	totals := models.Totals{}

	payload := BuildOrderPayload(nil, form, totals)
	assert.Equal(t, form.Billing, payload.ShippingAddress)
}

func TestBuildOrderPayloadSeparateShippingAddress(t *testing.T) {
	form := sampleForm()
	form.UseShippingAddress = true
	form.Shipping = models.Address{Address: "1 Depot Rd", City: "Leeds", Country: "UK", Zip: "LS1"}

	payload := BuildOrderPayload(nil, form, models.Totals{})

	assert.Equal(t, form.Shipping, payload.ShippingAddress)
	// billing fields on the payload still carry the billing address
	assert.Equal(t, "12 Analytical St", payload.Address)
}

func TestBuildOrderPayloadIdempotencyKeysDiffer(t *testing.T) {
	form := sampleForm()

	first := BuildOrderPayload(nil, form, models.Totals{})
	second := BuildOrderPayload(nil, form, models.Totals{})

	assert.NotEqual(t, first.IdempotencyKey, second.IdempotencyKey)
}
