package models

import "time"

type NotificationType string

const (
	NotificationCritical NotificationType = "critical"
	NotificationWarning  NotificationType = "warning"
	NotificationInfo     NotificationType = "info"
	NotificationSuccess  NotificationType = "success"
	NotificationWhatsApp NotificationType = "whatsapp"
)

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Time      string           `json:"time"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
