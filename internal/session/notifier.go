package session

import (
	"github.com/SPS-2025/school-portal-service/internal/utils"
)

// Notifier receives the user-visible outcome of every session operation.
// The manager produces the notifications; rendering them (toast, log line,
// response field) is the collaborator's concern.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type logNotifier struct {
	logger utils.Logger
}

// NewLogNotifier returns a Notifier that writes notifications to the
// structured log; the default for headless deployments.
func NewLogNotifier(logger utils.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Success(msg string) {
	n.logger.Info("session notification", "kind", "success", "message", msg)
}

func (n *logNotifier) Error(msg string) {
	n.logger.Warn("session notification", "kind", "error", "message", msg)
}
