// economy/tasks.go
package economy

import (
	"context"
	"fmt"

	"github.com/trya20205-hub/SpinNRewardsbackend/database"
	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// TaskReward is the fixed coin credit for an approved task.
const TaskReward = 500

// TaskStatus is the outcome of an approval attempt.
type TaskStatus int

const (
	TaskApproved TaskStatus = iota
	NoPendingTask
)

// Tasks runs the submit/approve workflow. A task goes pending once, then
// either stays pending or gets approved; there is no rejected state.
type Tasks struct {
	Repo *database.Repo
}

// Submit marks the user's task pending. Returns false when a submission is
// already pending, in which case nothing changes and the caller must not ping
// the admin again.
func (t *Tasks) Submit(ctx context.Context, id string) (bool, error) {
	submitted := false
	err := t.Repo.Update(ctx, id, func(u *models.User) bool {
		if u.HasPendingTask(id) {
			return false
		}
		u.TaskPending = append(u.TaskPending, id)
		submitted = true
		return true
	})
	if err != nil {
		return false, fmt.Errorf("submit task for %s: %w", id, err)
	}
	return submitted, nil
}

// Approve moves the user's pending task to done and credits TaskReward coins.
// NoPendingTask leaves the record unchanged.
func (t *Tasks) Approve(ctx context.Context, id string) (TaskStatus, error) {
	status := NoPendingTask
	err := t.Repo.Update(ctx, id, func(u *models.User) bool {
		if !u.HasPendingTask(id) {
			return false
		}
		u.Coins += TaskReward
		u.TaskPending = removeID(u.TaskPending, id)
		u.TaskDone = append(u.TaskDone, id)
		status = TaskApproved
		return true
	})
	if err != nil {
		return status, fmt.Errorf("approve task for %s: %w", id, err)
	}
	return status, nil
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
