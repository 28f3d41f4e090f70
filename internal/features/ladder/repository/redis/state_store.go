package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/features/ladder/models"
	"fitladder-backend/internal/features/ladder/repository"
)

type stateStore struct {
	client redis.Cmdable
}

func NewStateStore(client redis.Cmdable) repository.StateStore {
	return &stateStore{
		client: client,
	}
}

func makeStateKey(userID string) string {
	return fmt.Sprintf("ladderSubmissionState_%s", userID)
}

func (s *stateStore) Load(ctx context.Context, userID string) (*models.SubmissionState, error) {
	stateJSON, err := s.client.Get(ctx, makeStateKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, apperrors.NewCacheError("load submission state", err)
	}

	var state models.SubmissionState
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, fmt.Errorf("corrupted submission state: %w", err)
	}

	return &state, nil
}

func (s *stateStore) Save(ctx context.Context, userID string, state *models.SubmissionState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, makeStateKey(userID), stateJSON, 0).Err(); err != nil {
		return apperrors.NewCacheError("save submission state", err)
	}

	return nil
}
