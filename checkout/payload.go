package checkout

import (
	"github.com/google/uuid"

	"gofalre.io/storefront/models"
)

// BuildOrderPayload transforms the cart lines and checkout form into the
// document the external order API accepts. It performs no I/O and assumes the
// form was validated upstream.
func BuildOrderPayload(lines []models.CartLine, form *models.CheckoutForm, totals models.Totals) *models.OrderSubmission {
	products := make([]models.OrderProduct, 0, len(lines))
	for i := range lines {
		line := &lines[i]

		// 訂單記錄只帶第一張商品圖
		var image string
		if len(line.Image) > 0 {
			image = line.Image[0]
		}

		products = append(products, models.OrderProduct{
			Product:   line.ProductID,
			Name:      line.Name,
			Image:     image,
			Price:     line.FinalUnitPrice,
			Quantity:  line.Quantity,
			Variation: line.SelectedOptions,
		})
	}

	submission := &models.OrderSubmission{
		IdempotencyKey:  uuid.NewString(),
		UserID:          form.UserID,
		Products:        products,
		ShippingAddress: form.ShipTo(),
		BillingMethod:   form.BillingMethod,
		PaymentMethod:   form.PaymentMethod,
		StripePaymentID: form.StripePaymentID,
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Phone:           form.Phone,
		Address:         form.Billing.Address,
		City:            form.Billing.City,
		Country:         form.Billing.Country,
		Zip:             form.Billing.Zip,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		ShippingCost:    totals.ShippingCost,
		Discount:        totals.Discount,
		TotalAmount:     totals.Total,
		Notes:           form.Notes,
	}

	if len(lines) > 0 {
		submission.Currency = lines[0].Currency
	}

	return submission
}
