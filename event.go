package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"gofalre.io/storefront/models"
)

const (
	checkoutEventSubject = "storefront.checkout.completed"
	orderEventSubject    = "storefront.orders.status.>"
)

type EventHandler func(context.Context, *models.OrderEvent) error

// EventManager routes order lifecycle events. The handler map works without
// a bus; natsConn may be nil, in which case subscribing and publishing are
// no-ops and only direct dispatch is available.
type EventManager struct {
	natsConn *nats.Conn
	handlers map[models.OrderEventType]EventHandler
	logger   *zap.Logger
}

func NewEventManager(natsConn *nats.Conn, logger *zap.Logger) *EventManager {
	return &EventManager{
		natsConn: natsConn,
		handlers: make(map[models.OrderEventType]EventHandler),
		logger:   logger,
	}
}

func (em *EventManager) RegisterHandler(eventType models.OrderEventType, handler EventHandler) {
	em.handlers[eventType] = handler
}

func (em *EventManager) GetHandler(eventType models.OrderEventType) (EventHandler, bool) {
	handler, exists := em.handlers[eventType]
	return handler, exists
}

// SubscribeToOrderEvents feeds inbound order status events from the order
// service into the worker pool.
func (em *EventManager) SubscribeToOrderEvents(wp *WorkerPool) error {
	if em.natsConn == nil {
		return nil
	}

	_, err := em.natsConn.Subscribe(orderEventSubject, func(msg *nats.Msg) {
		var event models.OrderEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			em.logger.Error("Failed to unmarshal order event", zap.Error(err))
			return
		}

		wp.Submit(context.Background(), &event)
	})

	return err
}

// PublishCheckoutCompleted announces a confirmed submission to downstream
// consumers (back-office dashboards, notification services).
func (em *EventManager) PublishCheckoutCompleted(confirmation *models.OrderConfirmation, totals models.Totals) error {
	if em.natsConn == nil {
		return nil
	}

	event := models.OrderEvent{
		ID:          uuid.NewString(),
		Type:        models.OrderEventCheckoutCompleted,
		OrderNumber: confirmation.OrderNumber,
		Total:       totals.Total,
		OccurredAt:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal checkout event: %w", err)
	}

	return em.natsConn.Publish(checkoutEventSubject, data)
}

func (s *service) registerEventHandlers() {
	eventHandlers := map[models.OrderEventType]EventHandler{
		models.OrderEventConfirmed: s.handleOrderStatus,
		models.OrderEventShipped:   s.handleOrderStatus,
		models.OrderEventCancelled: s.handleOrderStatus,
	}

	for eventType, handler := range eventHandlers {
		s.eventManager.RegisterHandler(eventType, handler)
	}
}

func (s *service) handleOrderStatus(_ context.Context, event *models.OrderEvent) error {
	s.logger.Info("Order status event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("order_number", event.OrderNumber))

	s.listenerMu.RLock()
	listener := s.statusListener
	s.listenerMu.RUnlock()

	if listener != nil {
		listener(event)
	}

	return nil
}

// ProcessEvent dispatches an inbound event to its registered handler.
func (s *service) ProcessEvent(ctx context.Context, event *models.OrderEvent) error {
	handler, exists := s.eventManager.GetHandler(event.Type)
	if !exists {
		return fmt.Errorf("no handler registered for event type: %s", event.Type)
	}

	if err := handler(ctx, event); err != nil {
		s.logger.Error("處理事件時出錯",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return err
	}

	return nil
}
