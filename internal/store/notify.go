package store

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a user-visible, dismissible message. Remote failures
// never escape the store; they all degrade into one of these.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Notifier receives store notifications.
type Notifier interface {
	Notify(Notification)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
