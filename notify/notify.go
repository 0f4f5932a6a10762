package notify

import "travel-backoffice/logger"

// Level classifies a user-facing notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier is the toast sink the mutation coordinator reports through. The
// presentation layer decides how a message is rendered.
type Notifier interface {
	Notify(message string, level Level)
}

// LogNotifier routes notifications to the application log. It is the default
// sink when no frontend channel is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(message string, level Level) {
	switch level {
	case LevelSuccess:
		logger.Success(message)
	case LevelError:
		logger.Error(message, nil)
	default:
		logger.Info(message)
	}
}
