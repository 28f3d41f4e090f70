package service

import (
	"context"

	"fitladder-backend/internal/common/logger"
	"fitladder-backend/internal/features/ladder/models"
)

// logNotifier is the default Notifier: the backend has no push channel of
// its own, the client polls the result, so outcomes are just logged.
type logNotifier struct{}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(_ context.Context, userID string, n models.Notification) {
	logger.Info().
		Str("user_id", userID).
		Str("title", n.Title).
		Str("type", n.Type).
		Str("message", n.Message).
		Msg("User notification")
}
