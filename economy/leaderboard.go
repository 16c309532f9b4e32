// economy/leaderboard.go
package economy

import (
	"sort"
	"strconv"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// BoardEntry is one leaderboard row.
type BoardEntry struct {
	ID    string
	Score int
}

// TopByCoins ranks users by coin balance, highest first.
func TopByCoins(users map[string]*models.User, n int) []BoardEntry {
	return top(users, n, func(u *models.User) int { return u.Coins })
}

// TopByRefs ranks users by lifetime referral count, highest first.
func TopByRefs(users map[string]*models.User, n int) []BoardEntry {
	return top(users, n, func(u *models.User) int { return len(u.Refs) })
}

// top sorts descending by score with ascending numeric id as tie-break, so
// the ordering does not depend on backend iteration order.
func top(users map[string]*models.User, n int, score func(*models.User) int) []BoardEntry {
	entries := make([]BoardEntry, 0, len(users))
	for id, u := range users {
		entries = append(entries, BoardEntry{ID: id, Score: score(u)})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		a, _ := strconv.ParseInt(entries[i].ID, 10, 64)
		b, _ := strconv.ParseInt(entries[j].ID, 10, 64)
		return a < b
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
