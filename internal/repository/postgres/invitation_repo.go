package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vacationbooking/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

const invitationColumns = `id, user_id, vacation_id, is_accepted, created_at`

// CreateBatch inserts all invitations in one transaction; either the whole
// batch commits or none of it does.
func (r *invitationRepository) CreateBatch(ctx context.Context, invs []*domain.Invitation) error {
	if len(invs) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invitations (user_id, vacation_id, is_accepted, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, inv := range invs {
		err := tx.QueryRowContext(ctx, query, inv.UserID, inv.VacationID, inv.Accepted, inv.CreatedAt).
			Scan(&inv.ID)
		if err != nil {
			return mapError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	inv := &domain.Invitation{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&inv.ID, &inv.UserID, &inv.VacationID, &inv.Accepted, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByVacationID(ctx context.Context, vacationID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invitations WHERE vacation_id = $1`,
		vacationID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + invitationColumns + ` FROM invitations
		WHERE vacation_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	invs, err := r.queryInvitations(ctx, query, vacationID, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return invs, total, nil
}

func (r *invitationRepository) ListAcceptedByVacationID(ctx context.Context, vacationID string) ([]*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE vacation_id = $1 AND is_accepted`
	return r.queryInvitations(ctx, query, vacationID)
}

func (r *invitationRepository) ExistsForUser(ctx context.Context, userID, vacationID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM invitations WHERE user_id = $1 AND vacation_id = $2)`,
		userID, vacationID,
	).Scan(&exists)
	return exists, err
}

// Accept flips the accepted flag; the update is a no-op when the flag is
// already set, which keeps re-acceptance silent.
func (r *invitationRepository) Accept(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE invitations SET is_accepted = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invitationRepository) queryInvitations(ctx context.Context, query string, args ...any) ([]*domain.Invitation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.Invitation
	for rows.Next() {
		inv := &domain.Invitation{}
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.VacationID, &inv.Accepted, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}
