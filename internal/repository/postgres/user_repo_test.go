package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"vacationbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("ana@example.com", "ana", "Ana", "Silva", "hash", "salt", nil, created, created).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))

		repo := NewUserRepository(db)
		user := domain.NewUser("ana@example.com", "ana", "Ana", "Silva", created, created)
		user.PasswordHash = "hash"
		user.Salt = "salt"
		require.NoError(t, repo.Create(ctx, user))
		require.Equal(t, "user-uuid-1", user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		repo := NewUserRepository(db)
		user := domain.NewUser("ana@example.com", "ana", "Ana", "Silva", created, created)
		err = repo.Create(ctx, user)
		require.True(t, errors.Is(err, domain.ErrDuplicateEmail))
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, username, first_name, last_name`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "email", "username", "first_name", "last_name", "password_hash", "salt", "picture_path", "created_at", "updated_at",
			}).AddRow("user-1", "ana@example.com", "ana", "Ana", "Silva", "hash", "salt", nil, created, created))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", user.ID)
		require.Equal(t, "hash", user.PasswordHash)
		require.Nil(t, user.PicturePath)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, username, first_name, last_name`).
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "email", "username", "first_name", "last_name", "password_hash", "salt", "picture_path", "created_at", "updated_at",
			}))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "ghost@example.com")
		require.True(t, errors.Is(err, domain.ErrUserNotFound))
		require.Nil(t, user)
	})
}

func TestUserRepository_Exists(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE id = \$1\)`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewUserRepository(db)
	exists, err := repo.Exists(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
