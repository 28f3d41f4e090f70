package repository

import (
	"context"
	"errors"

	"fitladder-backend/internal/features/verification/models"
)

var ErrDuplicateApplicationNumber = errors.New("application number already taken")

// RequestRepository is the verification request collection. The request
// documents are queried by user and status; the per-day sequence counter
// backing application numbers lives next to them.
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id string) (*models.Request, error)
	GetLatestByUser(ctx context.Context, userID string) (*models.Request, error)
	HasPending(ctx context.Context, userID string) (bool, error)
	ListByStatus(ctx context.Context, status models.Status, limit int) ([]*models.Request, error)
	UpdateStatus(ctx context.Context, id string, status models.Status, rejectionReason string) (*models.Request, error)

	// NextSequence increments and returns the per-day application counter.
	// Read-increment-write, best-effort unique.
	NextSequence(ctx context.Context, day string) (int, error)
}
