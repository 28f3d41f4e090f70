package service

import (
	"fitladder-backend/internal/features/profile/models"
)

// GuardPatch reconciles an outgoing patch against the current remote record
// so that unrelated partial writes cannot regress protected fields.
//
// Rule A: the early adopter flag is one-way. If the remote record carries it
// and the patch omits the subscription object, the flag is forced into the
// patch. An explicit false against a remote true is a caller bug and fails
// loud instead of being silently repaired.
//
// Rule B: once verified, the five verification fields survive any write that
// merely omits them. An explicit IsVerified=false is the legitimate
// re-submission rule and clears them all.
func GuardPatch(remote *models.UserRecord, patch *models.RecordPatch) error {
	if remote.Subscription.IsEarlyAdopter {
		if patch.Subscription == nil {
			patch.Subscription = &models.SubscriptionPatch{}
		}
		if !patch.Subscription.IsEarlyAdopter.IsSet() {
			patch.Subscription.IsEarlyAdopter = models.Some(true)
		} else if !patch.Subscription.IsEarlyAdopter.Value() {
			return models.ErrPrivilegeRegression
		}
	}

	if remote.IsVerified && !patch.IsVerified.IsSet() {
		// Переносим все пять полей верификации без изменений
		patch.IsVerified = models.Some(true)
		patch.VerifiedLadderScore = remote.VerifiedLadderScore
		patch.VerifiedAt = remote.VerifiedAt
		patch.VerificationExpiredAt = remote.VerificationExpiredAt
		patch.VerificationRequestID = remote.VerificationRequestID
	}

	return nil
}
