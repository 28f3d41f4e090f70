package repository

import (
	"context"

	"fitladder-backend/internal/features/profile/models"
)

// UserRepository is the remote user document store: get-by-id plus
// merge-writes. There is no transactional read-modify-write; Save is a
// best-effort read-merge-write pair.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.UserRecord, error)
	Create(ctx context.Context, record *models.UserRecord) error
	Save(ctx context.Context, id string, patch *models.RecordPatch) (*models.UserRecord, error)
}
