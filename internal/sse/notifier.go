package sse

import (
	"time"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// OrderNotifier is the interface services use to emit order events.
type OrderNotifier interface {
	NotifyOrderCreated(order *models.Order)
	NotifyOrderStatusChanged(order *models.Order)
	NotifyLowStock(productID int, message string)
}

// HubNotifier implements OrderNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyOrderCreated(order *models.Order) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&OrderEvent{
		Event:     EventOrderCreated,
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total,
		ItemCount: len(order.Items),
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyOrderStatusChanged(order *models.Order) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&OrderEvent{
		Event:     EventOrderStatusChanged,
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyLowStock(productID int, message string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&OrderEvent{
		Event:     EventLowStock,
		ProductID: productID,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyOrderCreated(order *models.Order)       {}
func (n *NopNotifier) NotifyOrderStatusChanged(order *models.Order) {}
func (n *NopNotifier) NotifyLowStock(productID int, message string) {}
