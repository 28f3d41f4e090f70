package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitladder-backend/internal/features/profile/models"
)

type fakeUserRepo struct {
	records map[string]*models.UserRecord
	saves   int
	getErr  error
}

func newFakeUserRepo(records ...*models.UserRecord) *fakeUserRepo {
	repo := &fakeUserRepo{records: make(map[string]*models.UserRecord)}
	for _, r := range records {
		repo.records[r.ID] = r
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.UserRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return record, nil
}

func (f *fakeUserRepo) Create(_ context.Context, record *models.UserRecord) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeUserRepo) Save(_ context.Context, id string, patch *models.RecordPatch) (*models.UserRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	patch.Apply(record)
	f.saves++
	return record, nil
}

func TestGetOrCreate(t *testing.T) {
	t.Run("creates a fresh record on first contact", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewProfileService(repo)

		record, err := svc.GetOrCreate(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", record.ID)
		assert.Equal(t, models.SubscriptionStatusNone, record.Subscription.Status)
		assert.Contains(t, repo.records, "user-1")
	})

	t.Run("returns the existing record untouched", func(t *testing.T) {
		existing := models.NewUserRecord("user-1")
		existing.Weight = 82.5
		repo := newFakeUserRepo(existing)
		svc := NewProfileService(repo)

		record, err := svc.GetOrCreate(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 82.5, record.Weight)
	})

	t.Run("storage errors are not mistaken for absence", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.getErr = errors.New("connection refused")
		svc := NewProfileService(repo)

		_, err := svc.GetOrCreate(context.Background(), "user-1")
		require.Error(t, err)
		assert.NotContains(t, repo.records, "user-1")
	})
}

func TestSave(t *testing.T) {
	t.Run("runs the guard before the write", func(t *testing.T) {
		remote := models.NewUserRecord("user-1")
		remote.Subscription.IsEarlyAdopter = true
		repo := newFakeUserRepo(remote)
		svc := NewProfileService(repo)

		patch := &models.RecordPatch{
			Subscription: &models.SubscriptionPatch{IsEarlyAdopter: models.Some(false)},
		}

		_, err := svc.Save(context.Background(), "user-1", patch)
		assert.ErrorIs(t, err, models.ErrPrivilegeRegression)
		assert.Zero(t, repo.saves)
		assert.True(t, repo.records["user-1"].Subscription.IsEarlyAdopter)
	})

	t.Run("unrelated patch keeps the protected fields", func(t *testing.T) {
		remote := models.NewUserRecord("user-1")
		remote.Subscription.IsEarlyAdopter = true
		remote.IsVerified = true
		repo := newFakeUserRepo(remote)
		svc := NewProfileService(repo)

		weight := 78.0
		record, err := svc.Save(context.Background(), "user-1", &models.RecordPatch{Weight: &weight})
		require.NoError(t, err)

		assert.Equal(t, 78.0, record.Weight)
		assert.True(t, record.Subscription.IsEarlyAdopter)
		assert.True(t, record.IsVerified)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewProfileService(newFakeUserRepo())

		_, err := svc.Save(context.Background(), "ghost", &models.RecordPatch{})
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}
