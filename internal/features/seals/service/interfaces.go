package service

import (
	"context"

	pmodels "fitladder-backend/internal/features/profile/models"
	"fitladder-backend/internal/features/seals/models"
	"fitladder-backend/internal/features/score"
)

type SealService interface {
	// Quote классифицирует очки и возвращает стоимость заявки
	Quote(composite float64, categories score.CategoryScores) models.Quote
	// Consume списывает печати с балансов пользователя и сохраняет запись
	Consume(ctx context.Context, userID string, amount int) (*models.Balances, error)
	// ResetMonthly начисляет месячную квоту, не чаще раза в календарный месяц
	ResetMonthly(ctx context.Context, record *pmodels.UserRecord) (*pmodels.UserRecord, error)
}
