package platform

import (
	"isotope/internal/core/timer"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

// NotificationSender is the part of fyne.App used to deliver notifications.
type NotificationSender interface {
	SendNotification(notification *fyne.Notification)
}

// Notifier delivers timer notifications through the desktop notification centre.
type Notifier struct {
	sender NotificationSender
	logger zerolog.Logger
}

// NewNotifier creates a Notifier backed by sender.
func NewNotifier(sender NotificationSender, logger zerolog.Logger) *Notifier {
	return &Notifier{sender: sender, logger: logger}
}

// Notify implements timer.Notifier.
func (notifier *Notifier) Notify(notification timer.Notification) {
	notifier.logger.Debug().
		Str("event", "notification.sent").
		Str("title", notification.Title).
		Msg("delivering notification")
	notifier.sender.SendNotification(fyne.NewNotification(notification.Title, notification.Body))
}
