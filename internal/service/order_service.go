package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"chmfc/internal/core"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Storefront is everything the store page needs
type Storefront struct {
	Products []*core.Product      `json:"products"`
	Payment  *core.PaymentSettings `json:"payment"`
}

// OrderView decorates an order for the admin order list
type OrderView struct {
	*core.Order
	PriceLabel string `json:"price_label"`
	Age        string `json:"age"`
}

type OrderService struct {
	products core.ProductRepository
	orders   core.OrderRepository
	users    core.UserRepository
	settings core.SettingsRepository
	notifier core.Notifier
	logger   *zap.Logger

	// in-flight admin notifications
	pending sync.WaitGroup
	now     func() time.Time
}

func NewOrderService(
	products core.ProductRepository,
	orders core.OrderRepository,
	users core.UserRepository,
	settings core.SettingsRepository,
	notifier core.Notifier, // optional
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		users:    users,
		settings: settings,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *OrderService) Storefront() (*Storefront, error) {
	products, err := s.products.List()
	if err != nil {
		return nil, err
	}
	payment, err := s.settings.Payment()
	if err != nil {
		return nil, err
	}
	return &Storefront{Products: products, Payment: payment}, nil
}

// PlaceOrder records purchase intent for user. Payment is settled out of band
// and never verified here.
func (s *OrderService) PlaceOrder(ctx context.Context, user *core.UserProfile, req *core.PlaceOrderRequest) (*core.Order, error) {
	if user == nil || user.ID == "" {
		return nil, core.ErrAuthRequired
	}

	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		return nil, fmt.Errorf("%w: shipping address is required", core.ErrInvalidInput)
	}

	product, err := s.products.GetByID(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", req.ProductID, err)
	}

	order := &core.Order{
		UserID:          user.ID,
		UserName:        user.DisplayName(),
		ProductID:       product.ID,
		ProductName:     product.Name,
		Price:           product.Price,
		ShippingAddress: address,
		Status:          core.OrderPending,
		OrderDate:       s.now().UTC(),
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	s.logger.Info("[ORDER_SERVICE] order placed",
		zap.String("order_id", order.ID),
		zap.String("product", product.Name),
		zap.String("user_id", user.ID),
	)

	if s.notifier != nil {
		s.pending.Add(1)
		// Run asynchronously to not block the fan
		go func() {
			defer s.pending.Done()
			s.notifyAdmins(context.WithoutCancel(ctx), order)
		}()
	}

	return order, nil
}

func (s *OrderService) notifyAdmins(ctx context.Context, order *core.Order) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	tokens, err := s.users.AdminDeviceTokens()
	if err != nil {
		s.logger.Error("[ORDER_SERVICE] load admin tokens", zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}

	stale, err := s.notifier.NotifyNewOrder(ctx, tokens, order)
	if err != nil {
		s.logger.Warn("[ORDER_SERVICE] admin notification failed", zap.String("order_id", order.ID), zap.Error(err))
	}
	for _, token := range stale {
		if err := s.users.ClearDeviceToken(token); err != nil {
			s.logger.Warn("[ORDER_SERVICE] clear stale token", zap.Error(err))
		}
	}
}

// WaitNotifications blocks until queued admin notifications have finished
func (s *OrderService) WaitNotifications() {
	s.pending.Wait()
}

func (s *OrderService) MyOrders(userID string) ([]*core.Order, error) {
	if userID == "" {
		return nil, core.ErrAuthRequired
	}
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	core.SortOrdersByDate(orders)
	return orders, nil
}

// ListOrders returns every order newest first with display labels
func (s *OrderService) ListOrders() ([]*OrderView, error) {
	orders, err := s.orders.List()
	if err != nil {
		return nil, err
	}
	core.SortOrdersByDate(orders)

	now := s.now()
	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = &OrderView{
			Order:      o,
			PriceLabel: "$" + humanize.FormatFloat("#,###.##", o.Price),
			Age:        humanize.RelTime(o.OrderDate, now, "ago", "from now"),
		}
	}
	return views, nil
}

// UpdateStatus sets any of the known statuses. Transitions are not restricted.
func (s *OrderService) UpdateStatus(orderID string, status core.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", core.ErrInvalidInput, status)
	}
	if err := s.orders.UpdateStatus(orderID, status); err != nil {
		return err
	}
	s.logger.Info("[ORDER_SERVICE] status updated", zap.String("order_id", orderID), zap.String("status", string(status)))
	return nil
}

func (s *OrderService) PaymentSettings() (*core.PaymentSettings, error) {
	return s.settings.Payment()
}

func (s *OrderService) SavePaymentSettings(p *core.PaymentSettings) error {
	p.BankName = strings.TrimSpace(p.BankName)
	p.AccountNumber = strings.TrimSpace(p.AccountNumber)
	p.AccountName = strings.TrimSpace(p.AccountName)
	p.WhatsAppNumber = strings.TrimSpace(p.WhatsAppNumber)
	return s.settings.SavePayment(p)
}

// Product admin

func (s *OrderService) Products() ([]*core.Product, error) {
	return s.products.List()
}

func (s *OrderService) SaveProduct(p *core.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", core.ErrInvalidInput)
	}
	if p.Price < 0 || p.Stock < 0 {
		return fmt.Errorf("%w: price and stock cannot be negative", core.ErrInvalidInput)
	}
	if p.ID == "" {
		return s.products.Create(p)
	}
	return s.products.Update(p)
}

func (s *OrderService) DeleteProduct(id string) error {
	return s.products.Delete(id)
}
