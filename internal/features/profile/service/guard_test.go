package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitladder-backend/internal/features/profile/models"
)

func verifiedRecord() *models.UserRecord {
	score := 104.5
	verifiedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := verifiedAt.AddDate(1, 0, 0)
	requestID := "req-1"

	record := models.NewUserRecord("user-1")
	record.IsVerified = true
	record.VerifiedLadderScore = &score
	record.VerifiedAt = &verifiedAt
	record.VerificationExpiredAt = &expiresAt
	record.VerificationRequestID = &requestID
	return record
}

func TestGuardPatchEarlyAdopter(t *testing.T) {
	t.Run("flag forced into a patch that omits the subscription", func(t *testing.T) {
		remote := models.NewUserRecord("user-1")
		remote.Subscription.IsEarlyAdopter = true

		weight := 82.0
		patch := &models.RecordPatch{Weight: &weight}

		require.NoError(t, GuardPatch(remote, patch))
		require.NotNil(t, patch.Subscription)
		assert.True(t, patch.Subscription.IsEarlyAdopter.IsSet())
		assert.True(t, patch.Subscription.IsEarlyAdopter.Value())
	})

	t.Run("flag forced when the subscription patch omits only the flag", func(t *testing.T) {
		remote := models.NewUserRecord("user-1")
		remote.Subscription.IsEarlyAdopter = true

		status := models.SubscriptionStatusActive
		patch := &models.RecordPatch{Subscription: &models.SubscriptionPatch{Status: &status}}

		require.NoError(t, GuardPatch(remote, patch))
		assert.True(t, patch.Subscription.IsEarlyAdopter.Value())
	})

	t.Run("explicit false against a remote true fails loud", func(t *testing.T) {
		remote := models.NewUserRecord("user-1")
		remote.Subscription.IsEarlyAdopter = true

		patch := &models.RecordPatch{
			Subscription: &models.SubscriptionPatch{IsEarlyAdopter: models.Some(false)},
		}

		assert.ErrorIs(t, GuardPatch(remote, patch), models.ErrPrivilegeRegression)
	})

	t.Run("remote false leaves the patch alone", func(t *testing.T) {
		remote := models.NewUserRecord("user-1")

		patch := &models.RecordPatch{}
		require.NoError(t, GuardPatch(remote, patch))
		assert.Nil(t, patch.Subscription)
	})
}

func TestGuardPatchVerificationFields(t *testing.T) {
	t.Run("all five fields carried forward on omission", func(t *testing.T) {
		remote := verifiedRecord()

		weight := 82.0
		patch := &models.RecordPatch{Weight: &weight}

		require.NoError(t, GuardPatch(remote, patch))
		assert.True(t, patch.IsVerified.IsSet())
		assert.True(t, patch.IsVerified.Value())
		assert.Equal(t, remote.VerifiedLadderScore, patch.VerifiedLadderScore)
		assert.Equal(t, remote.VerifiedAt, patch.VerifiedAt)
		assert.Equal(t, remote.VerificationExpiredAt, patch.VerificationExpiredAt)
		assert.Equal(t, remote.VerificationRequestID, patch.VerificationRequestID)
	})

	t.Run("explicit false is the legitimate clear", func(t *testing.T) {
		remote := verifiedRecord()

		patch := &models.RecordPatch{IsVerified: models.Some(false)}

		require.NoError(t, GuardPatch(remote, patch))
		assert.False(t, patch.IsVerified.Value())
		assert.Nil(t, patch.VerifiedLadderScore)

		patch.Apply(remote)
		assert.False(t, remote.IsVerified)
		assert.Nil(t, remote.VerifiedLadderScore)
		assert.Nil(t, remote.VerifiedAt)
		assert.Nil(t, remote.VerificationExpiredAt)
		assert.Nil(t, remote.VerificationRequestID)
	})

	t.Run("guarded patch survives the merge", func(t *testing.T) {
		remote := verifiedRecord()
		wantScore := *remote.VerifiedLadderScore

		weight := 82.0
		patch := &models.RecordPatch{Weight: &weight}
		require.NoError(t, GuardPatch(remote, patch))

		patch.Apply(remote)
		assert.Equal(t, 82.0, remote.Weight)
		assert.True(t, remote.IsVerified)
		require.NotNil(t, remote.VerifiedLadderScore)
		assert.Equal(t, wantScore, *remote.VerifiedLadderScore)
	})
}
