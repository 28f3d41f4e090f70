package service

import (
	"context"

	"fitladder-backend/internal/features/profile/models"
)

type ProfileService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.UserRecord, error)
	Get(ctx context.Context, userID string) (*models.UserRecord, error)
	// Save применяет guard защищаемых полей и выполняет merge-запись
	Save(ctx context.Context, userID string, patch *models.RecordPatch) (*models.UserRecord, error)
}
