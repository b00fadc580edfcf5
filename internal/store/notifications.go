package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/telemetry"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

const sinkTimeout = 2 * time.Second

// AppendNotification prepends a new unread notification to the log.
func (s *Store) AppendNotification(title, message string, typ models.NotificationType) models.Notification {
	s.mu.Lock()
	n := s.appendNotificationLocked(title, message, typ)
	s.mu.Unlock()

	s.mirror(n)
	return n
}

func (s *Store) appendNotificationLocked(title, message string, typ models.NotificationType) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Time:      "Just now",
		Type:      typ,
		CreatedAt: s.now(),
	}
	s.notifications = append([]models.Notification{n}, s.notifications...)
	telemetry.Notifications.WithLabelValues(string(typ)).Inc()
	return n
}

func (s *Store) mirror(n models.Notification) {
	if s.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()
	if err := s.sink.Push(ctx, n); err != nil {
		logger.Log.Warn().Err(err).Str("notification_id", n.ID).Msg("failed to mirror notification")
	}
}

// Notifications returns the log, newest first.
func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Notification{}, s.notifications...)
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAllRead flags every notification as read.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

func (s *Store) ClearNotifications() {
	s.mu.Lock()
	s.notifications = []models.Notification{}
	s.mu.Unlock()

	if s.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()
	if err := s.sink.Clear(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("failed to clear notification feed")
	}
}
