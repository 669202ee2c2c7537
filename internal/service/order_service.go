package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/sse"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// validStatusTransitions maps each order status to the statuses an admin may
// move it to. Cancellation by the customer is handled separately and only
// from pending.
var validStatusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {models.OrderStatusReceived},
}

// OrderService handles checkout and order lifecycle. Checkout is all or
// nothing: the order rows, every stock decrement and the cart clear commit
// in one transaction, so a stock shortage on the last line leaves nothing
// behind.
type OrderService struct {
	orders        *repository.OrderRepository
	cart          *repository.CartRepository
	addresses     *repository.AddressRepository
	notifications *NotificationService
	notifier      sse.OrderNotifier
	bestSellers   *BestSellerService
}

func NewOrderService(
	orders *repository.OrderRepository,
	cart *repository.CartRepository,
	addresses *repository.AddressRepository,
	notifications *NotificationService,
	notifier sse.OrderNotifier,
	bestSellers *BestSellerService,
) *OrderService {
	return &OrderService{
		orders:        orders,
		cart:          cart,
		addresses:     addresses,
		notifications: notifications,
		notifier:      notifier,
		bestSellers:   bestSellers,
	}
}

// Checkout turns the user's cart into an order shipped to the given address.
// Lines whose product went inactive or whose stock ran out reject the whole
// checkout rather than silently shrinking the order.
func (s *OrderService) Checkout(ctx context.Context, userID, addressID int) (*models.Order, error) {
	lines, err := s.cart.GetLines(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, utils.ErrCartEmpty
	}

	addr, err := s.addresses.GetByID(addressID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrAddressNotFound
		}
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	subtotal := 0
	for _, line := range lines {
		if line.ProductStatus != models.ProductStatusActive {
			return nil, utils.ErrProductNotFound
		}
		if line.StockQuantity < line.Quantity {
			return nil, utils.ErrInsufficientStock
		}
		total := line.UnitPrice * line.Quantity
		items = append(items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			UnitPrice:    line.UnitPrice,
			Quantity:     line.Quantity,
			TotalPrice:   total,
		})
		subtotal += total
	}

	order := &models.Order{
		OrderID:        strings.ToUpper(uuid.New().String()[:8]),
		UserID:         userID,
		Status:         models.OrderStatusPending,
		Subtotal:       subtotal,
		Total:          subtotal,
		ShipRecipient:  addr.Recipient,
		ShipPhone:      addr.Phone,
		ShipStreet:     addr.Street,
		ShipCity:       addr.City,
		ShipProvince:   addr.Province,
		ShipPostalCode: addr.PostalCode,
	}

	if err := s.orders.CreateWithItems(order, items); err != nil {
		return nil, err
	}
	order.Items = items

	log.Info().
		Str("order_id", order.OrderID).
		Int("user_id", userID).
		Int("total", order.Total).
		Int("items", len(items)).
		Msg("Order placed")

	s.notifications.NotifyUser(userID, models.NotificationOrderCreated,
		fmt.Sprintf("Your order %s has been placed", order.OrderID))
	s.notifications.NotifyAdmins(models.NotificationOrderCreated,
		fmt.Sprintf("New order %s received", order.OrderID))
	s.notifier.NotifyOrderCreated(order)
	s.bestSellers.Invalidate(ctx)

	return order, nil
}

// GetByOrderID returns a user's order with its items.
func (s *OrderService) GetByOrderID(orderID string, userID int) (*models.Order, error) {
	order, err := s.orders.GetByOrderID(orderID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetByUser(userID int) ([]models.Order, error) {
	return s.orders.GetByUser(userID)
}

// Cancel cancels a pending order on the customer's behalf and restocks its
// items.
func (s *OrderService) Cancel(orderID string, userID int) error {
	if err := s.orders.CancelAndRestock(orderID, userID, "pending"); err != nil {
		return err
	}
	s.notifications.NotifyAdmins(models.NotificationOrderStatus,
		fmt.Sprintf("Order %s was cancelled by the customer", orderID))
	return nil
}

// MarkReceived lets the customer confirm delivery of their own order. Only
// delivered orders can be marked received.
func (s *OrderService) MarkReceived(orderID string, userID int) (*models.Order, error) {
	order, err := s.orders.GetByOrderID(orderID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status != models.OrderStatusDelivered {
		return nil, utils.ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(orderID, models.OrderStatusReceived); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusReceived
	s.notifier.NotifyOrderStatusChanged(order)
	return order, nil
}

// UpdateStatus moves an order along the lifecycle. Invalid transitions are
// rejected.
func (s *OrderService) UpdateStatus(orderID string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetByOrderID(orderID, 0)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}

	if !transitionAllowed(order.Status, status) {
		return nil, utils.ErrInvalidStatus
	}

	if status == models.OrderStatusCancelled {
		if err := s.orders.CancelAndRestock(orderID, order.UserID, string(order.Status)); err != nil {
			return nil, err
		}
	} else if err := s.orders.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.notifications.NotifyUser(order.UserID, models.NotificationOrderStatus,
		fmt.Sprintf("Your order %s is now %s", order.OrderID, status))
	s.notifier.NotifyOrderStatusChanged(order)

	return order, nil
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// GetAllAdmin lists orders for the back office.
func (s *OrderService) GetAllAdmin(filter *repository.AdminOrderFilter) (*repository.AdminOrderResult, error) {
	return s.orders.GetAllAdmin(filter)
}

// GetAdminStats returns order counts and revenue, optionally date-bounded.
func (s *OrderService) GetAdminStats(startDate, endDate *string) (*repository.AdminOrderStats, error) {
	return s.orders.GetAdminStats(startDate, endDate)
}

// GetDailyTrend returns per-day order volume for the dashboard chart.
func (s *OrderService) GetDailyTrend(days int) ([]repository.DailyOrderStat, error) {
	return s.orders.GetDailyTrend(days)
}
