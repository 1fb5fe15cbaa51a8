package enum

// ShippingMethod 表示結帳時選擇的貨運方式
type ShippingMethod string

const (
	ShippingMethodFedex ShippingMethod = "fedex"
	ShippingMethodDHL   ShippingMethod = "dhl"
	ShippingMethodNone  ShippingMethod = ""
)
