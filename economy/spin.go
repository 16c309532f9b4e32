// economy/spin.go
package economy

import "github.com/trya20205-hub/SpinNRewardsbackend/models"

// SpinCooldown is how long a user with no spins left waits before the refill,
// in seconds (10 hours).
const SpinCooldown = 36000

// RefillSpins is what the counter is set to when the cooldown has elapsed.
// Deliberately less than the initial grant of 3.
const RefillSpins = 2

// SpinResult reports one spin attempt. Exactly one of Won/Cooldown applies.
type SpinResult struct {
	Won       bool
	Reward    int
	Remaining int64 // seconds until next spin when on cooldown
}

// AttemptSpin plays one spin on u at time now (unix seconds). On success it
// consumes a spin, stamps the time and credits the drawn reward; on cooldown
// it leaves u untouched. The refill path sets the counter to RefillSpins and
// then falls through to the normal consume, so the first spin after a refill
// leaves exactly one spin available.
func AttemptSpin(u *models.User, now int64, drawer *Drawer) SpinResult {
	if u.Spins <= 0 {
		elapsed := now - u.LastSpinTime
		if elapsed < SpinCooldown {
			return SpinResult{Remaining: SpinCooldown - elapsed}
		}
		u.Spins = RefillSpins
	}

	u.Spins--
	u.LastSpinTime = now

	reward := drawer.Draw()
	u.Coins += reward
	return SpinResult{Won: true, Reward: reward}
}

// CooldownClock splits a remaining-seconds value into whole hours and minutes
// for display. Integer division, no rounding up.
func CooldownClock(remaining int64) (hours, mins int64) {
	return remaining / 3600, (remaining % 3600) / 60
}
