package models

import "time"

// OrderEventType 表示訂單生命週期事件的類型
type OrderEventType string

const (
	OrderEventCheckoutCompleted OrderEventType = "checkout.completed"
	OrderEventConfirmed         OrderEventType = "order.confirmed"
	OrderEventShipped           OrderEventType = "order.shipped"
	OrderEventCancelled         OrderEventType = "order.cancelled"
)

// OrderEvent 代表跨越訂單服務邊界的生命週期事件
type OrderEvent struct {
	ID          string         `json:"id"`
	Type        OrderEventType `json:"type"`
	OrderNumber string         `json:"order_number"`
	Total       float64        `json:"total,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
