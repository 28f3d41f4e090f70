package repository

import (
	"context"

	"fitladder-backend/internal/features/ladder/models"
)

// StateStore is the local per-user persistence of the limiter state.
// Load returns (nil, nil) when nothing is stored yet; a decode failure is
// returned as an error so the limiter can self-heal.
type StateStore interface {
	Load(ctx context.Context, userID string) (*models.SubmissionState, error)
	Save(ctx context.Context, userID string, state *models.SubmissionState) error
}
