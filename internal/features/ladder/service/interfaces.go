package service

import (
	"context"

	"fitladder-backend/internal/features/ladder/models"
)

// Notifier is the UI notification callback invoked on submission outcomes.
type Notifier interface {
	Notify(ctx context.Context, userID string, notification models.Notification)
}

type LadderService interface {
	// ConfirmSubmit выполняет полный цикл отправки результата в ладдер
	ConfirmSubmit(ctx context.Context, userID string) (*models.SubmitResult, error)
	// CheckLimit предварительная проверка лимита для UI
	CheckLimit(ctx context.Context, userID string) (*models.LimitCheck, error)
}
