package store

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// POChannel is the medium a purchase order is dispatched through.
type POChannel string

const (
	ChannelWhatsApp POChannel = "whatsapp"
	ChannelEmail    POChannel = "email"
)

func (c POChannel) Valid() bool { return c == ChannelWhatsApp || c == ChannelEmail }

// ErrNoSupplier is returned when a purchase order targets a product without a supplier.
var ErrNoSupplier = errors.New("product has no supplier")

// DispatchPurchaseOrder records a purchase order for a product as a notification. Nothing
// is sent to the supplier; the notification is the whole effect.
func (s *Store) DispatchPurchaseOrder(productID string, channel POChannel) (models.Notification, error) {
	p, err := s.Product(productID)
	if err != nil {
		return models.Notification{}, err
	}

	switch channel {
	case ChannelWhatsApp:
		if p.Supplier == nil {
			return models.Notification{}, ErrNoSupplier
		}
		return s.AppendNotification("WhatsApp PO Sent", fmt.Sprintf("PO for %s dispatched to %s.", p.Name, p.Supplier.Name), models.NotificationWhatsApp), nil
	case ChannelEmail:
		return s.AppendNotification("PO Sent", fmt.Sprintf("Email order for %s sent.", p.Name), models.NotificationSuccess), nil
	default:
		return models.Notification{}, fmt.Errorf("unknown purchase order channel %q", channel)
	}
}

// supplierOrderSubject names orders raised from the supplier directory, which are not tied to a product.
const supplierOrderSubject = "Stock Request"

// DispatchSupplierOrder records a general stock request to a supplier as a notification.
func (s *Store) DispatchSupplierOrder(sup models.Supplier, channel POChannel) (models.Notification, error) {
	switch channel {
	case ChannelWhatsApp:
		return s.AppendNotification("WhatsApp PO Sent", fmt.Sprintf("PO for %s dispatched to %s.", supplierOrderSubject, sup.Name), models.NotificationWhatsApp), nil
	case ChannelEmail:
		return s.AppendNotification("PO Sent", fmt.Sprintf("Email order for %s sent to %s.", supplierOrderSubject, sup.Name), models.NotificationSuccess), nil
	default:
		return models.Notification{}, fmt.Errorf("unknown purchase order channel %q", channel)
	}
}
