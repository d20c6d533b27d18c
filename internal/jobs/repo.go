package jobs

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StaleAfter is how long a RUNNING job may hold its lock before it is put
// back in the queue.
const StaleAfter = 5 * time.Minute

type Repo struct {
	DB *gorm.DB
}

// Enqueue adds a pending job. It reports false when the user already has a
// pending or running job of the same type.
func (r *Repo) Enqueue(ctx context.Context, userID uint64, typ string, payload []byte, runAt time.Time) (bool, error) {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	j := Job{
		UserID:      userID,
		Type:        typ,
		Payload:     payload,
		RunAt:       runAt.UTC(),
		Status:      StatusPending,
		MaxAttempts: 8,
	}
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&j)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repo) EnqueueRefill(ctx context.Context, userID uint64, runAt time.Time) (bool, error) {
	return r.Enqueue(ctx, userID, TypeMotivationRefill, nil, runAt)
}

// Claim one due job atomically. Postgres uses SKIP LOCKED so several workers
// never claim the same row; other databases serialize writers already.
func (r *Repo) Claim(ctx context.Context, workerID string, now time.Time) (*Job, error) {
	// SQLite compares timestamps as text
	now = now.UTC()
	var job Job
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// requeue stuck RUNNING jobs
		if err := tx.Exec(`
update jobs
set status=?, locked_by=null, locked_at=null, updated_at=?
where status=? and locked_at is not null and locked_at < ?
`, StatusPending, now, StatusRunning, now.Add(-StaleAfter)).Error; err != nil {
			return err
		}

		if tx.Dialector.Name() == "postgres" {
			return tx.Raw(`
with cte as (
  select id
  from jobs
  where status=? and run_at <= ?
  order by run_at asc
  for update skip locked
  limit 1
)
update jobs
set status=?, locked_by=?, locked_at=?, updated_at=?
where id in (select id from cte)
returning *;
`, StatusPending, now, StatusRunning, workerID, now, now).Scan(&job).Error
		}

		var due Job
		err := tx.Where("status = ? and run_at <= ?", StatusPending, now).
			Order("run_at asc").
			Limit(1).
			Find(&due).Error
		if err != nil || due.ID == 0 {
			return err
		}
		res := tx.Model(&Job{}).
			Where("id = ? and status = ?", due.ID, StatusPending).
			Updates(map[string]any{
				"status":     StatusRunning,
				"locked_by":  workerID,
				"locked_at":  now,
				"updated_at": now,
			})
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		return tx.First(&job, due.ID).Error
	})
	if err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, nil
	}
	return &job, nil
}

func (r *Repo) MarkDone(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Exec(`update jobs set status=?, locked_by=null, locked_at=null, updated_at=? where id=?`,
		StatusDone, time.Now(), id).Error
}

func (r *Repo) MarkFailed(ctx context.Context, id uint64, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(`update jobs set status=?, last_error=?, locked_by=null, locked_at=null, updated_at=? where id=?`,
		StatusFailed, errMsg, time.Now(), id).Error
}

func (r *Repo) RetryLater(ctx context.Context, id uint64, attempts int, runAt time.Time, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(`
update jobs
set status=?,
    attempts=?,
    run_at=?,
    locked_by=null,
    locked_at=null,
    last_error=?,
    updated_at=?
where id=?`, StatusPending, attempts, runAt.UTC(), errMsg, time.Now(), id).Error
}

// Get is used by tests and diagnostics.
func (r *Repo) Get(ctx context.Context, id uint64) (*Job, error) {
	var j Job
	if err := r.DB.WithContext(ctx).First(&j, id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}
