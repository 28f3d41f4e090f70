package service

import (
	"context"

	"fitladder-backend/internal/features/verification/models"
)

// CreateInput is the user-provided part of a verification request
type CreateInput struct {
	SocialAccount  models.SocialAccount
	VideoLink      string
	Description    string
	RequestedItems []string
	TargetData     string
}

type VerificationService interface {
	// CanApply проверяет все условия подачи заявки
	CanApply(ctx context.Context, userID string) (*models.Eligibility, error)
	// CreateRequest списывает печати и создает заявку на проверку
	CreateRequest(ctx context.Context, userID string, input CreateInput) (*models.Request, error)
	// Approve и Reject выполняются ревьюером
	Approve(ctx context.Context, requestID string) (*models.Request, error)
	Reject(ctx context.Context, requestID string, reason string) (*models.Request, error)
	ListPending(ctx context.Context, limit int) ([]*models.Request, error)
}
