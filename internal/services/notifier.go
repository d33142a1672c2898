package services

import "go.uber.org/zap"

// Severity of a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier receives fire-and-forget user feedback.
type Notifier interface {
	Notify(message string, severity Severity)
}

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

// Notify logs message at a level matching severity.
func (n *LogNotifier) Notify(message string, severity Severity) {
	if severity == SeverityError {
		n.logger.Warn(message, zap.String("severity", string(severity)))
		return
	}
	n.logger.Info(message, zap.String("severity", string(severity)))
}
