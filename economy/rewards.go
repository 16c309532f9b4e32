// economy/rewards.go
package economy

import "math/rand"

// Reward is one entry of the spin payout table.
type Reward struct {
	Value  int
	Weight int
}

// RewardPool is the fixed payout distribution. Total weight 90; the chance of
// a value is its weight over the total.
var RewardPool = []Reward{
	{Value: 0, Weight: 20},
	{Value: 300, Weight: 35},
	{Value: 500, Weight: 27},
	{Value: 800, Weight: 10},
	{Value: 1000, Weight: 5},
	{Value: 1500, Weight: 3},
}

// Drawer draws rewards from the pool with an injectable random source, so
// tests can seed it.
type Drawer struct {
	rng   *rand.Rand
	total int
}

func NewDrawer(rng *rand.Rand) *Drawer {
	total := 0
	for _, r := range RewardPool {
		total += r.Weight
	}
	return &Drawer{rng: rng, total: total}
}

// Draw samples an index uniformly over [0, total weight) and maps it to its
// bucket.
func (d *Drawer) Draw() int {
	n := d.rng.Intn(d.total)
	for _, r := range RewardPool {
		if n < r.Weight {
			return r.Value
		}
		n -= r.Weight
	}
	// unreachable while the pool is non-empty
	return 0
}

// BalanceValue converts a coin balance to its currency value at 0.02 per coin.
func BalanceValue(coins int) float64 {
	return float64(coins) * 0.02
}
