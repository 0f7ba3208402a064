package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/backend"
)

const (
	defaultNotificationCapacity = 20

	logEventNotification = "dashboard_notification"
)

// NotificationLevel matches the Bootstrap alert variants used by the page.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationError   NotificationLevel = "danger"
)

type Notification struct {
	ID        string
	Level     NotificationLevel
	Message   string
	CreatedAt time.Time
}

// Notifier keeps the most recent notifications, newest first.
type Notifier struct {
	logger   *zap.Logger
	capacity int
	clock    func() time.Time

	mutex   sync.Mutex
	entries []Notification
}

func NewNotifier(logger *zap.Logger, capacity int) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = defaultNotificationCapacity
	}
	return &Notifier{logger: logger, capacity: capacity, clock: time.Now}
}

func (notifier *Notifier) Notify(level NotificationLevel, message string) Notification {
	notification := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: notifier.clock().UTC(),
	}

	notifier.mutex.Lock()
	notifier.entries = append([]Notification{notification}, notifier.entries...)
	if len(notifier.entries) > notifier.capacity {
		notifier.entries = notifier.entries[:notifier.capacity]
	}
	notifier.mutex.Unlock()

	notifier.logger.Info(
		logEventNotification,
		zap.String("id", notification.ID),
		zap.String("level", string(level)),
		zap.String("message", message),
	)
	return notification
}

// Failure records one error notification for a failed operation. Backend
// errors show their own message after the summary.
func (notifier *Notifier) Failure(summary string, err error) Notification {
	message := summary
	if detail := backend.UserMessage(err); detail != "" {
		message = summary + ": " + detail
	}
	return notifier.Notify(NotificationError, message)
}

func (notifier *Notifier) Recent() []Notification {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	return append([]Notification(nil), notifier.entries...)
}
