// economy/referral.go
package economy

import (
	"context"
	"fmt"

	"github.com/trya20205-hub/SpinNRewardsbackend/database"
	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// Referral rate limits. The lists they count have no reset mechanism, so both
// caps are effectively lifetime caps.
const (
	DailyRefCap  = 5
	WeeklyRefCap = 40
)

// ReferralStatus is the outcome of one referral application.
type ReferralStatus int

const (
	ReferralAccepted ReferralStatus = iota
	SelfReferral
	AlreadyReferred
	RefCapExceeded
)

// Referrals applies referral credit to referrers under the caps.
type Referrals struct {
	Repo *database.Repo
}

// Apply credits referrerID for bringing in refereeID: one bonus spin, and the
// referee id appended to the lifetime and rate-limit lists. The referrer
// record is persisted before returning; the referee's record is not touched
// here. Rejections mutate nothing.
func (r *Referrals) Apply(ctx context.Context, referrerID, refereeID string) (ReferralStatus, error) {
	if referrerID == refereeID {
		return SelfReferral, nil
	}

	status := ReferralAccepted
	err := r.Repo.Update(ctx, referrerID, func(u *models.User) bool {
		if u.HasRef(refereeID) {
			status = AlreadyReferred
			return false
		}
		if len(u.DailyRefs) >= DailyRefCap || len(u.WeeklyRefs) >= WeeklyRefCap {
			status = RefCapExceeded
			return false
		}
		u.Refs = append(u.Refs, refereeID)
		u.DailyRefs = append(u.DailyRefs, refereeID)
		u.WeeklyRefs = append(u.WeeklyRefs, refereeID)
		u.Spins++
		return true
	})
	if err != nil {
		return status, fmt.Errorf("apply referral %s -> %s: %w", refereeID, referrerID, err)
	}
	return status, nil
}
