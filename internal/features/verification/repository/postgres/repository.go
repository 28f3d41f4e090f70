package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/features/verification/models"
	"fitladder-backend/internal/features/verification/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.RequestRepository {
	return &postgresRepository{db: db}
}

// EnsureSchema создает таблицы заявок и счетчиков, если их еще нет
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS verification_requests (
			id                    TEXT PRIMARY KEY,
			user_id               TEXT NOT NULL,
			application_number    TEXT NOT NULL UNIQUE,
			status                TEXT NOT NULL,
			tier                  TEXT NOT NULL,
			social_account_type   TEXT NOT NULL DEFAULT '',
			social_account_handle TEXT NOT NULL DEFAULT '',
			video_link            TEXT NOT NULL DEFAULT '',
			description           TEXT NOT NULL DEFAULT '',
			requested_items       TEXT[] NOT NULL DEFAULT '{}',
			target_data           TEXT NOT NULL DEFAULT '',
			payment_status        TEXT NOT NULL DEFAULT '',
			rejection_reason      TEXT NOT NULL DEFAULT '',
			created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_verification_requests_user_status
			ON verification_requests (user_id, status);

		CREATE TABLE IF NOT EXISTS application_counters (
			day TEXT PRIMARY KEY,
			seq INT NOT NULL
		);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return apperrors.NewDatabaseError("ensure verification schema", err)
	}
	return nil
}

// Create вставляет новую заявку
func (r *postgresRepository) Create(ctx context.Context, request *models.Request) error {
	query := `
		INSERT INTO verification_requests (
			id, user_id, application_number, status, tier,
			social_account_type, social_account_handle, video_link,
			description, requested_items, target_data, payment_status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.UserID, request.ApplicationNumber, request.Status, request.Tier,
		request.SocialAccount.Type, request.SocialAccount.Handle, request.VideoLink,
		request.Description, pq.Array(request.RequestedItems), request.TargetData,
		request.PaymentStatus, request.CreatedAt, request.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrDuplicateApplicationNumber
		}
		return apperrors.NewDatabaseError("create verification request", err)
	}

	return nil
}

const requestColumns = `
	id, user_id, application_number, status, tier,
	social_account_type, social_account_handle, video_link,
	description, requested_items, target_data, payment_status,
	rejection_reason, created_at, updated_at
`

func (r *postgresRepository) scanRequest(row interface {
	Scan(dest ...interface{}) error
}) (*models.Request, error) {
	var request models.Request
	err := row.Scan(
		&request.ID, &request.UserID, &request.ApplicationNumber, &request.Status, &request.Tier,
		&request.SocialAccount.Type, &request.SocialAccount.Handle, &request.VideoLink,
		&request.Description, pq.Array(&request.RequestedItems), &request.TargetData,
		&request.PaymentStatus, &request.RejectionReason, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrRequestNotFound
		}
		return nil, apperrors.NewDatabaseError("scan verification request", err)
	}
	return &request, nil
}

// GetByID получает заявку по ID
func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM verification_requests WHERE id = $1`
	return r.scanRequest(r.db.QueryRowContext(ctx, query, id))
}

// GetLatestByUser получает последнюю заявку пользователя
func (r *postgresRepository) GetLatestByUser(ctx context.Context, userID string) (*models.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM verification_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanRequest(r.db.QueryRowContext(ctx, query, userID))
}

// HasPending проверяет, есть ли у пользователя заявка в ожидании.
// Pre-check перед вставкой, без транзакции - best effort.
func (r *postgresRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM verification_requests WHERE user_id = $1 AND status = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, models.StatusPending).Scan(&exists); err != nil {
		return false, apperrors.NewDatabaseError("check pending requests", err)
	}
	return exists, nil
}

// ListByStatus возвращает заявки в указанном статусе для ревьюера
func (r *postgresRepository) ListByStatus(ctx context.Context, status models.Status, limit int) ([]*models.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM verification_requests
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, status, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list verification requests", err)
	}
	defer rows.Close()

	var requests []*models.Request
	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// UpdateStatus переводит заявку в новый статус
func (r *postgresRepository) UpdateStatus(ctx context.Context, id string, status models.Status, rejectionReason string) (*models.Request, error) {
	query := `
		UPDATE verification_requests
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + requestColumns

	return r.scanRequest(r.db.QueryRowContext(ctx, query, id, status, rejectionReason))
}

// NextSequence выдает следующий номер дневного счетчика заявок.
// Чтение и запись не обернуты в транзакцию: редкий дубликат номера
// перехватывается уникальным индексом на application_number.
func (r *postgresRepository) NextSequence(ctx context.Context, day string) (int, error) {
	var seq int
	err := r.db.QueryRowContext(ctx,
		`SELECT seq FROM application_counters WHERE day = $1`, day).Scan(&seq)
	if err == sql.ErrNoRows {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO application_counters (day, seq) VALUES ($1, 1)
			 ON CONFLICT (day) DO UPDATE SET seq = application_counters.seq + 1`, day); err != nil {
			return 0, apperrors.NewDatabaseError("initialize application counter", err)
		}
		return 1, nil
	}
	if err != nil {
		return 0, apperrors.NewDatabaseError("read application counter", err)
	}

	seq++
	if _, err := r.db.ExecContext(ctx,
		`UPDATE application_counters SET seq = $2 WHERE day = $1`, day, seq); err != nil {
		return 0, apperrors.NewDatabaseError("advance application counter", err)
	}

	return seq, nil
}
