package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"gofalre.io/storefront/cart"
	"gofalre.io/storefront/checkout"
	"gofalre.io/storefront/models"
	"gofalre.io/storefront/models/enum"
	"gofalre.io/storefront/order"
)

// ErrEmptyCart 表示購物車是空的，無法結帳
var ErrEmptyCart = errors.New("cart is empty")

type Service interface {
	LoadCart(ctx context.Context)
	AddItem(ctx context.Context, item models.CartLine)
	DecreaseItem(ctx context.Context, productID string, options []models.SelectedOption)
	RemoveItem(ctx context.Context, productID string, options []models.SelectedOption)
	UpdateItemQuantity(ctx context.Context, item models.CartLine, delta int64)
	ClearCart(ctx context.Context)
	CartLines() []models.CartLine
	CartQuantity() uint64

	ApplyPromoCode(code string) (float64, error)
	Quote(method enum.ShippingMethod, discount float64) models.Totals
	Checkout(ctx context.Context, form *models.CheckoutForm, method enum.ShippingMethod, discount float64) (*models.OrderConfirmation, error)

	OnOrderStatus(fn func(*models.OrderEvent))
}

type service struct {
	cart   *cart.Store
	promos checkout.PromoTable
	orders order.Client
	opts   checkout.Options

	eventManager *EventManager
	workerPool   *WorkerPool

	listenerMu     sync.RWMutex
	statusListener func(*models.OrderEvent)

	logger *zap.Logger
}

// NewService wires the cart store, checkout aggregator, order client and
// event plumbing into one facade. natsConn may be nil when no event bus is
// available; lifecycle events are then skipped.
func NewService(
	cartStore *cart.Store, orders order.Client, promos checkout.PromoTable, opts checkout.Options,
	natsConn *nats.Conn,
	logger *zap.Logger) Service {
	if promos == nil {
		promos = checkout.DefaultPromoTable
	}

	s := &service{
		cart:   cartStore,
		promos: promos,
		orders: orders,
		opts:   opts,
		logger: logger,
	}

	s.eventManager = NewEventManager(natsConn, logger)
	s.workerPool = NewWorkerPool(10, s, logger)
	s.registerEventHandlers()

	// 訂閱訂單狀態事件
	if err := s.eventManager.SubscribeToOrderEvents(s.workerPool); err != nil {
		logger.Error("Failed to subscribe to order events", zap.Error(err))
	}

	return s
}

func (s *service) LoadCart(ctx context.Context) {
	s.cart.Load(ctx)
}

func (s *service) AddItem(ctx context.Context, item models.CartLine) {
	s.cart.Add(ctx, item)
}

func (s *service) DecreaseItem(ctx context.Context, productID string, options []models.SelectedOption) {
	s.cart.Decrease(ctx, productID, options)
}

func (s *service) RemoveItem(ctx context.Context, productID string, options []models.SelectedOption) {
	s.cart.Delete(ctx, productID, options)
}

func (s *service) UpdateItemQuantity(ctx context.Context, item models.CartLine, delta int64) {
	s.cart.BulkUpdate(ctx, item, delta)
}

func (s *service) ClearCart(ctx context.Context) {
	s.cart.Clear(ctx)
}

func (s *service) CartLines() []models.CartLine {
	return s.cart.Lines()
}

func (s *service) CartQuantity() uint64 {
	return s.cart.TotalQuantity()
}

// ApplyPromoCode resolves a promo code to its flat discount. An unknown code
// returns 0 with checkout.ErrPromoNotFound so the caller can surface
// "invalid code" and continue.
func (s *service) ApplyPromoCode(code string) (float64, error) {
	return s.promos.Apply(code)
}

// Quote computes the monetary breakdown for the current cart without
// submitting anything.
func (s *service) Quote(method enum.ShippingMethod, discount float64) models.Totals {
	return checkout.ComputeTotals(s.cart.Lines(), method, discount, s.opts)
}

// Checkout 將當前購物車結算為訂單並提交到外部訂單服務。
//
// The cart is cleared only after the order API confirms the submission; any
// failure leaves the cart untouched so the customer can retry.
func (s *service) Checkout(ctx context.Context, form *models.CheckoutForm, method enum.ShippingMethod, discount float64) (*models.OrderConfirmation, error) {
	// 1. 獲取購物車快照
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. 計算金額明細
	totals := checkout.ComputeTotals(lines, method, discount, s.opts)

	// 3. 組裝訂單文件
	submission := checkout.BuildOrderPayload(lines, form, totals)

	// 4. 提交到外部訂單服務
	confirmation, err := s.orders.Submit(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	// 5. 提交成功後才清空購物車
	s.cart.Clear(ctx)

	// 6. 發布結帳完成事件
	if err = s.eventManager.PublishCheckoutCompleted(confirmation, totals); err != nil {
		s.logger.Warn("Failed to publish checkout event", zap.Error(err))
	}

	return confirmation, nil
}

// OnOrderStatus registers a callback invoked for every inbound order status
// event, after it has been dispatched through the worker pool. Safe to call
// while events are already flowing.
func (s *service) OnOrderStatus(fn func(*models.OrderEvent)) {
	s.listenerMu.Lock()
	s.statusListener = fn
	s.listenerMu.Unlock()
}
