package score

import (
	vmodels "fitladder-backend/internal/features/verification/models"
)

// DefaultCeiling is the score ceiling applied to unverified users
const DefaultCeiling = 100.0

// ExtensionPolicy maps a raw composite score to the storable/displayable
// score given the user's verification status for a tier. Implementations
// must be pure.
type ExtensionPolicy interface {
	Apply(raw float64, status vmodels.Status, tier vmodels.Tier) float64
}

// CeilingPolicy caps unverified scores at a fixed ceiling and passes
// verified scores through unchanged. This is the default policy.
type CeilingPolicy struct {
	Ceiling float64
}

func NewCeilingPolicy() CeilingPolicy {
	return CeilingPolicy{Ceiling: DefaultCeiling}
}

func (p CeilingPolicy) Apply(raw float64, status vmodels.Status, tier vmodels.Tier) float64 {
	if status != vmodels.StatusVerified && raw > p.Ceiling {
		return p.Ceiling
	}
	return raw
}

// LinearPolicy extends verified scores past the ceiling along a straight
// line instead of passing them through raw. Unverified scores are still
// capped. With a zero slope it degenerates to pass-through above the
// ceiling for verified users.
//
// TODO: slope/intercept values are pending a product decision; until then
// the coordinator is wired with CeilingPolicy.
type LinearPolicy struct {
	Ceiling   float64
	Slope     float64
	Intercept float64
}

func (p LinearPolicy) Apply(raw float64, status vmodels.Status, tier vmodels.Tier) float64 {
	if status != vmodels.StatusVerified {
		if raw > p.Ceiling {
			return p.Ceiling
		}
		return raw
	}

	if raw <= p.Ceiling || p.Slope == 0 {
		return raw
	}
	return p.Ceiling + p.Slope*(raw-p.Ceiling) + p.Intercept
}
