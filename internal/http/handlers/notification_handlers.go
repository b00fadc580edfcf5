package handlers

import "net/http"

// GetNotificationsHandler godoc
// @Summary Notification log, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} NotificationsResult
// @Router /notifications [get]
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, NotificationsResult{
		Data:   inventory.Notifications(),
		Unread: inventory.UnreadCount(),
	})
}

// MarkNotificationsReadHandler godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Security BearerAuth
// @Success 204 "Marked"
// @Router /notifications/read [post]
func MarkNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	inventory.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

// ClearNotificationsHandler godoc
// @Summary Clear all notifications
// @Tags notifications
// @Security BearerAuth
// @Success 204 "Cleared"
// @Router /notifications [delete]
func ClearNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	inventory.ClearNotifications()
	w.WriteHeader(http.StatusNoContent)
}
