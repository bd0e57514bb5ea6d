package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vacationbooking/internal/domain"
)

type vacationRepository struct {
	DB *sql.DB
}

func NewVacationRepository(db *sql.DB) domain.VacationRepository {
	return &vacationRepository{
		DB: db,
	}
}

const vacationColumns = `id, title, description, place, country, latitude, longitude,
		date_begin, date_end, owner_id, is_published, picture_path, created_at, updated_at`

// Create inserts the vacation after re-checking, inside one serializable
// transaction, that the owner has no vacation with the same title and no
// vacation overlapping the period. Two concurrent creations for the same
// owner cannot both commit: one of them fails at the locked read or at commit
// with a serialization failure (mapped to ErrStorage).
func (r *vacationRepository) Create(ctx context.Context, v *domain.Vacation) error {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var titleTaken bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM vacations WHERE owner_id = $1 AND title = $2)`,
		v.OwnerID, v.Title,
	).Scan(&titleTaken)
	if err != nil {
		return mapError(err)
	}
	if titleTaken {
		return domain.ErrDuplicateTitle
	}

	existing, err := ownerIntervals(ctx, tx, v.OwnerID)
	if err != nil {
		return mapError(err)
	}
	if !domain.IsFree(v.Interval(), existing) {
		return domain.ErrPeriodConflict
	}

	query := `
		INSERT INTO vacations (title, description, place, country, latitude, longitude,
			date_begin, date_end, owner_id, is_published, picture_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		v.Title, v.Description, v.Place, v.Country, v.Latitude, v.Longitude,
		v.Begin, v.End, v.OwnerID, v.Published, v.PicturePath, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

// ownerIntervals locks and returns every booking period of the owner,
// draft or published.
func ownerIntervals(ctx context.Context, tx *sql.Tx, ownerID string) ([]domain.Interval, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT date_begin, date_end FROM vacations WHERE owner_id = $1 FOR UPDATE`,
		ownerID,
	)
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

func (r *vacationRepository) GetByID(ctx context.Context, id string) (*domain.Vacation, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations WHERE id = $1`
	v, err := scanVacation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *vacationRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Vacation, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations WHERE owner_id = $1 ORDER BY date_begin`
	return r.queryVacations(ctx, query, ownerID)
}

func (r *vacationRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Vacation, error) {
	query := `
		SELECT ` + vacationColumns + ` FROM vacations
		WHERE owner_id = $1
		   OR id IN (SELECT vacation_id FROM invitations WHERE user_id = $1 AND is_accepted)
		ORDER BY date_begin
	`
	return r.queryVacations(ctx, query, userID)
}

func (r *vacationRepository) queryVacations(ctx context.Context, query string, args ...any) ([]*domain.Vacation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vacations []*domain.Vacation
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, err
		}
		vacations = append(vacations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if vacations == nil {
		vacations = []*domain.Vacation{}
	}
	return vacations, nil
}

// Publish is the compare-and-set half of the one-way publish transition.
func (r *vacationRepository) Publish(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE vacations SET is_published = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_published`,
		id,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM vacations WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyPublished
	}
	return domain.ErrNotFound
}

func (r *vacationRepository) HeadcountByCountry(ctx context.Context, day time.Time) ([]*domain.CountryHeadcount, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	// One person per vacation owner plus one per invitee, for vacations
	// covering the requested day.
	query := `
		SELECT LOWER(v.country), COUNT(DISTINCT v.id) + COUNT(i.id)
		FROM vacations v
		LEFT JOIN invitations i ON i.vacation_id = v.id
		WHERE v.date_begin < $2 AND v.date_end > $1
		GROUP BY LOWER(v.country)
		ORDER BY LOWER(v.country)
	`
	rows, err := r.DB.QueryContext(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*domain.CountryHeadcount
	for rows.Next() {
		c := &domain.CountryHeadcount{}
		if err := rows.Scan(&c.Country, &c.People); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []*domain.CountryHeadcount{}
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVacation(row rowScanner) (*domain.Vacation, error) {
	v := &domain.Vacation{}
	var picture sql.NullString
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.Place, &v.Country, &v.Latitude, &v.Longitude,
		&v.Begin, &v.End, &v.OwnerID, &v.Published, &picture, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if picture.Valid {
		v.PicturePath = &picture.String
	}
	return v, nil
}
