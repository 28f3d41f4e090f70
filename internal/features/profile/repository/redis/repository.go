package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fitladder-backend/internal/features/profile/models"
	"fitladder-backend/internal/features/profile/repository"
)

type userRepository struct {
	client redis.Cmdable
}

func NewUserRepository(client redis.Cmdable) repository.UserRepository {
	return &userRepository{
		client: client,
	}
}

func makeUserKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.UserRecord, error) {
	recordJSON, err := r.client.Get(ctx, makeUserKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	var record models.UserRecord
	if err := json.Unmarshal(recordJSON, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) Create(ctx context.Context, record *models.UserRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, makeUserKey(record.ID), recordJSON, 0).Err()
}

// Save reads the document, merges the patch into it and writes the result
// back. The pair is not wrapped in a transaction; a concurrent writer can
// interleave between the read and the write.
func (r *userRepository) Save(ctx context.Context, id string, patch *models.RecordPatch) (*models.UserRecord, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(record)
	record.UpdatedAt = time.Now()

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, makeUserKey(id), recordJSON, 0).Err(); err != nil {
		return nil, err
	}

	return record, nil
}
