package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"vacationbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func activityRow(id, vacationID string, begin, end time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "place", "latitude", "longitude", "vacation_id", "date_begin", "date_end",
	}).AddRow(id, "City walking tour", "A guided walking tour", "Old town", 38.71, -9.13, vacationID, begin, end)
}

func TestActivityRepository_CreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO activities`).
			WithArgs("City walking tour", "A guided walking tour", "Old town", 38.71, -9.13, "vac-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("act-1"))
		mock.ExpectQuery(`INSERT INTO activities`).
			WithArgs("Surf lesson", "Beginner surf lesson", "The beach", 38.69, -9.22, "vac-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("act-2"))
		mock.ExpectCommit()

		repo := NewActivityRepository(db)
		activities := []*domain.Activity{
			{Name: "City walking tour", Description: "A guided walking tour", Place: "Old town", Latitude: 38.71, Longitude: -9.13, VacationID: "vac-1"},
			{Name: "Surf lesson", Description: "Beginner surf lesson", Place: "The beach", Latitude: 38.69, Longitude: -9.22, VacationID: "vac-1"},
		}
		require.NoError(t, repo.CreateBatch(ctx, activities))
		require.Equal(t, "act-1", activities[0].ID)
		require.Equal(t, "act-2", activities[1].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second insert fails and the batch rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO activities`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("act-1"))
		mock.ExpectQuery(`INSERT INTO activities`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewActivityRepository(db)
		activities := []*domain.Activity{
			{Name: "City walking tour", Description: "A guided walking tour", Place: "Old town", VacationID: "vac-1"},
			{Name: "Surf lesson", Description: "Beginner surf lesson", Place: "The beach", VacationID: "vac-1"},
		}
		require.Error(t, repo.CreateBatch(ctx, activities))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityRepository_Plan(t *testing.T) {
	ctx := context.Background()
	begin := time.Date(2026, 6, 11, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT vacation_id FROM activities WHERE id = \$1 FOR UPDATE`).
			WithArgs("act-1").
			WillReturnRows(sqlmock.NewRows([]string{"vacation_id"}).AddRow("vac-1"))
		mock.ExpectQuery(`SELECT date_begin, date_end FROM activities`).
			WithArgs("vac-1", "act-1").
			WillReturnRows(sqlmock.NewRows([]string{"date_begin", "date_end"}))
		mock.ExpectQuery(`UPDATE activities SET date_begin = \$1, date_end = \$2`).
			WithArgs(begin, end, "act-1").
			WillReturnRows(activityRow("act-1", "vac-1", begin, end))
		mock.ExpectCommit()

		repo := NewActivityRepository(db)
		a, err := repo.Plan(ctx, "act-1", begin, end)
		require.NoError(t, err)
		require.True(t, a.Planned())
		require.Equal(t, begin, *a.Begin)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflicting slot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT vacation_id FROM activities`).
			WillReturnRows(sqlmock.NewRows([]string{"vacation_id"}).AddRow("vac-1"))
		mock.ExpectQuery(`SELECT date_begin, date_end FROM activities`).
			WillReturnRows(sqlmock.NewRows([]string{"date_begin", "date_end"}).
				AddRow(begin.Add(time.Hour), end.Add(time.Hour)))
		mock.ExpectRollback()

		repo := NewActivityRepository(db)
		_, err = repo.Plan(ctx, "act-1", begin, end)
		require.True(t, errors.Is(err, domain.ErrPeriodConflict))
	})

	t.Run("inverted slot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT vacation_id FROM activities`).
			WillReturnRows(sqlmock.NewRows([]string{"vacation_id"}).AddRow("vac-1"))
		mock.ExpectQuery(`SELECT date_begin, date_end FROM activities`).
			WillReturnRows(sqlmock.NewRows([]string{"date_begin", "date_end"}))
		mock.ExpectRollback()

		repo := NewActivityRepository(db)
		_, err = repo.Plan(ctx, "act-1", end, begin)
		require.True(t, errors.Is(err, domain.ErrInvalidBooking))
	})

	t.Run("activity not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT vacation_id FROM activities`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		repo := NewActivityRepository(db)
		_, err = repo.Plan(ctx, "act-missing", begin, end)
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestActivityRepository_ListPlannedByVacationID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	begin := time.Date(2026, 6, 11, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, name, description, place, latitude, longitude, vacation_id, date_begin, date_end`).
		WithArgs("vac-1").
		WillReturnRows(activityRow("act-1", "vac-1", begin, end))

	repo := NewActivityRepository(db)
	activities, err := repo.ListPlannedByVacationID(ctx, "vac-1")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.True(t, activities[0].Planned())
	require.NoError(t, mock.ExpectationsWereMet())
}
