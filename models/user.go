// models/user.go
package models

// User is the persisted record for one Telegram user, stored keyed by the
// string form of the Telegram id. The same shape is written to every storage
// backend.
type User struct {
	TelegramID   int64    `json:"user_id" bson:"user_id"`
	Coins        int      `json:"coins" bson:"coins"`
	Spins        int      `json:"spins" bson:"spins"`
	LastSpinTime int64    `json:"last_spin_time" bson:"last_spin_time"`
	RefBy        *int64   `json:"ref_by" bson:"ref_by"`
	Refs         []string `json:"refs" bson:"refs"`
	DailyRefs    []string `json:"daily_refs" bson:"daily_refs"`
	WeeklyRefs   []string `json:"weekly_refs" bson:"weekly_refs"`
	TaskPending  []string `json:"task_pending" bson:"task_pending"`
	TaskDone     []string `json:"task_done" bson:"task_done"`
}

// NewUser returns the default record created on first contact: three free
// spins, zero coins, empty referral and task history.
func NewUser(telegramID int64) *User {
	return &User{
		TelegramID:   telegramID,
		Spins:        3,
		Refs:         []string{},
		DailyRefs:    []string{},
		WeeklyRefs:   []string{},
		TaskPending:  []string{},
		TaskDone:     []string{},
	}
}

// HasRef reports whether id is already recorded in the lifetime referral list.
func (u *User) HasRef(id string) bool {
	for _, r := range u.Refs {
		if r == id {
			return true
		}
	}
	return false
}

// HasPendingTask reports whether id is waiting for admin approval.
func (u *User) HasPendingTask(id string) bool {
	for _, t := range u.TaskPending {
		if t == id {
			return true
		}
	}
	return false
}
