package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vacationbooking/internal/domain"
)

type activityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{
		DB: db,
	}
}

const activityColumns = `id, name, description, place, latitude, longitude, vacation_id, date_begin, date_end`

// CreateBatch inserts all activities in one transaction; either the whole
// batch commits or none of it does.
func (r *activityRepository) CreateBatch(ctx context.Context, activities []*domain.Activity) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO activities (name, description, place, latitude, longitude, vacation_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, a := range activities {
		err := tx.QueryRowContext(ctx, query,
			a.Name, a.Description, a.Place, a.Latitude, a.Longitude, a.VacationID,
		).Scan(&a.ID)
		if err != nil {
			return mapError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	a, err := scanActivity(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) ListByVacationID(ctx context.Context, vacationID string) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE vacation_id = $1 ORDER BY created_at, id`
	return r.queryActivities(ctx, query, vacationID)
}

func (r *activityRepository) ListPlannedByVacationID(ctx context.Context, vacationID string) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + ` FROM activities
		WHERE vacation_id = $1 AND date_begin IS NOT NULL AND date_end IS NOT NULL
		ORDER BY date_begin
	`
	return r.queryActivities(ctx, query, vacationID)
}

// Plan overwrites the activity's period inside one serializable transaction:
// the conflict check against the vacation's other planned activities and the
// update form a single check-then-act unit. The activity excludes itself from
// the conflict set, so re-planning to the held interval succeeds. Matching
// the period check order, a conflict is reported before an inverted range.
func (r *activityRepository) Plan(ctx context.Context, activityID string, begin, end time.Time) (*domain.Activity, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var vacationID string
	err = tx.QueryRowContext(ctx,
		`SELECT vacation_id FROM activities WHERE id = $1 FOR UPDATE`,
		activityID,
	).Scan(&vacationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}

	existing, err := plannedIntervals(ctx, tx, vacationID, activityID)
	if err != nil {
		return nil, mapError(err)
	}
	if !domain.IsFree(domain.Interval{Begin: begin, End: end}, existing) {
		return nil, domain.ErrPeriodConflict
	}
	if !end.After(begin) {
		return nil, domain.ErrInvalidBooking
	}

	query := `
		UPDATE activities SET date_begin = $1, date_end = $2 WHERE id = $3
		RETURNING ` + activityColumns + `
	`
	a, err := scanActivity(tx.QueryRowContext(ctx, query, begin, end, activityID))
	if err != nil {
		return nil, mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// plannedIntervals locks and returns the planned periods of the vacation's
// other activities.
func plannedIntervals(ctx context.Context, tx *sql.Tx, vacationID, excludeID string) ([]domain.Interval, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT date_begin, date_end FROM activities
		WHERE vacation_id = $1 AND id <> $2
		  AND date_begin IS NOT NULL AND date_end IS NOT NULL
		FOR UPDATE
	`, vacationID, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []domain.Interval
	for rows.Next() {
		var iv domain.Interval
		if err := rows.Scan(&iv.Begin, &iv.End); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

func (r *activityRepository) queryActivities(ctx context.Context, query string, args ...any) ([]*domain.Activity, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	a := &domain.Activity{}
	var begin, end sql.NullTime
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Place, &a.Latitude, &a.Longitude,
		&a.VacationID, &begin, &end,
	)
	if err != nil {
		return nil, err
	}
	if begin.Valid {
		a.Begin = &begin.Time
	}
	if end.Valid {
		a.End = &end.Time
	}
	return a, nil
}
