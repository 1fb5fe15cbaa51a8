package enum

// PaymentMethod 表示結帳時選擇的付款方式
type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "cod"
	PaymentMethodCreditCard PaymentMethod = "creditcard"
	PaymentMethodPaypal     PaymentMethod = "paypal"
	PaymentMethodBitcoin    PaymentMethod = "bitcoin"
)
