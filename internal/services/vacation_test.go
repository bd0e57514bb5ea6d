package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vacationbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is the pinned "current time" for service tests. All test vacations
// begin well after it.
var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fakeVacationRepo is an in-memory VacationRepository for tests. Create
// emulates the repository's duplicate-title and per-owner overlap checks.
type fakeVacationRepo struct {
	byID      map[string]*domain.Vacation
	nextID    int
	createErr error
	headcount []*domain.CountryHeadcount
	// joined maps userID -> vacationIDs for ListForUser's membership part.
	joined map[string][]string
}

func newFakeVacationRepo() *fakeVacationRepo {
	return &fakeVacationRepo{
		byID:   make(map[string]*domain.Vacation),
		nextID: 1,
		joined: make(map[string][]string),
	}
}

func (f *fakeVacationRepo) Create(ctx context.Context, v *domain.Vacation) error {
	if f.createErr != nil {
		return f.createErr
	}
	var existing []domain.Interval
	for _, other := range f.byID {
		if other.OwnerID != v.OwnerID {
			continue
		}
		// Exact match, like the real repository's title = $2.
		if other.Title == v.Title {
			return domain.ErrDuplicateTitle
		}
		existing = append(existing, other.Interval())
	}
	if !domain.IsFree(v.Interval(), existing) {
		return domain.ErrPeriodConflict
	}
	v.ID = fmt.Sprintf("vac-%d", f.nextID)
	f.nextID++
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVacationRepo) GetByID(ctx context.Context, id string) (*domain.Vacation, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVacationRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Vacation, error) {
	var out []*domain.Vacation
	for _, v := range f.byID {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVacationRepo) ListForUser(ctx context.Context, userID string) ([]*domain.Vacation, error) {
	var out []*domain.Vacation
	for _, v := range f.byID {
		if v.OwnerID == userID {
			out = append(out, v)
		}
	}
	for _, id := range f.joined[userID] {
		if v, ok := f.byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVacationRepo) Publish(ctx context.Context, id string) error {
	v, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if v.Published {
		return domain.ErrAlreadyPublished
	}
	v.Published = true
	return nil
}

func (f *fakeVacationRepo) HeadcountByCountry(ctx context.Context, day time.Time) ([]*domain.CountryHeadcount, error) {
	return f.headcount, nil
}

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	invitations []*domain.Invitation
	nextID      int
	createErr   error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{nextID: 1}
}

// CreateBatch mirrors the all-or-nothing semantics of the real repository.
func (f *fakeInvitationRepo) CreateBatch(ctx context.Context, invs []*domain.Invitation) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, inv := range invs {
		inv.ID = fmt.Sprintf("inv-%d", f.nextID)
		f.nextID++
	}
	f.invitations = append(f.invitations, invs...)
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) ListByVacationID(ctx context.Context, vacationID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	var all []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.VacationID == vacationID {
			all = append(all, inv)
		}
	}
	total := len(all)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	page := all[offset:end]
	if page == nil {
		page = []*domain.Invitation{}
	}
	return page, total, nil
}

func (f *fakeInvitationRepo) ListAcceptedByVacationID(ctx context.Context, vacationID string) ([]*domain.Invitation, error) {
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.VacationID == vacationID && inv.Accepted {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) ExistsForUser(ctx context.Context, userID, vacationID string) (bool, error) {
	for _, inv := range f.invitations {
		if inv.UserID == userID && inv.VacationID == vacationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInvitationRepo) Accept(ctx context.Context, id string) error {
	for _, inv := range f.invitations {
		if inv.ID == id {
			inv.Accepted = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// addAccepted seeds an already-accepted invitation.
func (f *fakeInvitationRepo) addAccepted(userID, vacationID string) *domain.Invitation {
	inv := &domain.Invitation{
		ID:         fmt.Sprintf("inv-%d", f.nextID),
		UserID:     userID,
		VacationID: vacationID,
		Accepted:   true,
		CreatedAt:  testNow,
	}
	f.nextID++
	f.invitations = append(f.invitations, inv)
	return inv
}

// addPending seeds a pending invitation.
func (f *fakeInvitationRepo) addPending(userID, vacationID string) *domain.Invitation {
	inv := &domain.Invitation{
		ID:         fmt.Sprintf("inv-%d", f.nextID),
		UserID:     userID,
		VacationID: vacationID,
		CreatedAt:  testNow,
	}
	f.nextID++
	f.invitations = append(f.invitations, inv)
	return inv
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	user.ID = fmt.Sprintf("user-%d", len(f.byID)+1)
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeUserRepo) addUser(id, email string) *domain.User {
	u := &domain.User{ID: id, Email: email, UserName: id}
	f.byID[id] = u
	return u
}

// fakeNotifier records events instead of sending email.
type fakeNotifier struct {
	published   []domain.VacationPublishedEvent
	invitations []domain.InvitationCreatedEvent
}

func (f *fakeNotifier) NotifyVacationPublished(ctx context.Context, ev domain.VacationPublishedEvent) {
	f.published = append(f.published, ev)
}

func (f *fakeNotifier) NotifyInvitationCreated(ctx context.Context, ev domain.InvitationCreatedEvent) {
	f.invitations = append(f.invitations, ev)
}

// seedVacation creates a draft vacation directly in the fake repo, bypassing
// the service, so setup does not depend on the code under test.
func seedVacation(repo *fakeVacationRepo, ownerID, title string, begin, end time.Time) *domain.Vacation {
	v := &domain.Vacation{
		ID:        fmt.Sprintf("vac-%d", repo.nextID),
		Title:     title,
		OwnerID:   ownerID,
		Begin:     begin,
		End:       end,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	repo.nextID++
	repo.byID[v.ID] = v
	return v
}

func validCreateArgs(ownerID string) domain.CreateVacationArgs {
	return domain.CreateVacationArgs{
		Title:       "Summer in Lisbon",
		Description: "Two weeks at the coast",
		Place:       "Lisbon, Portugal",
		Country:     "Portugal",
		Latitude:    38.72,
		Longitude:   -9.14,
		DateBegin:   "10/06/2026",
		TimeBegin:   "09:00",
		DateEnd:     "24/06/2026",
		TimeEnd:     "18:00",
		OwnerID:     ownerID,
	}
}

func TestVacationService_Create(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	tests := []struct {
		name    string
		setup   func(repo *fakeVacationRepo)
		mutate  func(args *domain.CreateVacationArgs)
		wantErr error
		assert  func(t *testing.T, repo *fakeVacationRepo, v *domain.Vacation)
	}{
		{
			name: "success",
			assert: func(t *testing.T, repo *fakeVacationRepo, v *domain.Vacation) {
				require.NotEmpty(t, v.ID)
				assert.Equal(t, "Summer in Lisbon", v.Title)
				assert.False(t, v.Published)
				assert.Equal(t, time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC), v.Begin)
				assert.Equal(t, time.Date(2026, 6, 24, 18, 0, 0, 0, time.UTC), v.End)
				_, ok := repo.byID[v.ID]
				require.True(t, ok)
			},
		},
		{
			name: "malformed date",
			mutate: func(args *domain.CreateVacationArgs) {
				args.DateBegin = "2026-06-10"
			},
			wantErr: domain.ErrMalformedDateTime,
		},
		{
			name: "short title",
			mutate: func(args *domain.CreateVacationArgs) {
				args.Title = "Trip"
			},
			wantErr: domain.ErrInvalidBooking,
		},
		{
			name: "begins within the next hour",
			mutate: func(args *domain.CreateVacationArgs) {
				args.DateBegin = "01/05/2026"
				args.TimeBegin = "12:30"
			},
			wantErr: domain.ErrInvalidBooking,
		},
		{
			name: "ends before it begins",
			mutate: func(args *domain.CreateVacationArgs) {
				args.DateEnd = "01/06/2026"
			},
			wantErr: domain.ErrInvalidBooking,
		},
		{
			name: "duplicate title for the same owner",
			setup: func(repo *fakeVacationRepo) {
				seedVacation(repo, "user-1", "Summer in Lisbon",
					time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
					time.Date(2026, 8, 10, 18, 0, 0, 0, time.UTC))
			},
			wantErr: domain.ErrDuplicateTitle,
		},
		{
			name: "overlapping period for the same owner",
			setup: func(repo *fakeVacationRepo) {
				seedVacation(repo, "user-1", "Earlier trip",
					time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
					time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC))
			},
			wantErr: domain.ErrPeriodConflict,
		},
		{
			name: "touching endpoints conflict",
			setup: func(repo *fakeVacationRepo) {
				// Ends exactly when the new one begins; ties count as overlap.
				seedVacation(repo, "user-1", "Earlier trip",
					time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
					time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC))
			},
			wantErr: domain.ErrPeriodConflict,
		},
		{
			name: "same period is free for another owner",
			setup: func(repo *fakeVacationRepo) {
				seedVacation(repo, "user-2", "Their trip",
					time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC),
					time.Date(2026, 6, 24, 18, 0, 0, 0, time.UTC))
			},
			assert: func(t *testing.T, repo *fakeVacationRepo, v *domain.Vacation) {
				assert.Equal(t, "user-1", v.OwnerID)
			},
		},
		{
			name: "same title in a different case is allowed",
			setup: func(repo *fakeVacationRepo) {
				// The uniqueness rule is an exact match, not case-folded.
				seedVacation(repo, "user-1", "SUMMER IN LISBON",
					time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
					time.Date(2026, 8, 10, 18, 0, 0, 0, time.UTC))
			},
			assert: func(t *testing.T, repo *fakeVacationRepo, v *domain.Vacation) {
				assert.NotEmpty(t, v.ID)
			},
		},
		{
			name: "duplicate title is allowed for another owner",
			setup: func(repo *fakeVacationRepo) {
				seedVacation(repo, "user-2", "Summer in Lisbon",
					time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
					time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC))
			},
			assert: func(t *testing.T, repo *fakeVacationRepo, v *domain.Vacation) {
				assert.NotEmpty(t, v.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeVacationRepo()
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewVacationService(repo, newFakeInvitationRepo(), newFakeUserRepo(), &fakeNotifier{}, fixedClock, timeout)
			args := validCreateArgs("user-1")
			if tt.mutate != nil {
				tt.mutate(&args)
			}
			v, err := svc.Create(ctx, args)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				require.Nil(t, v)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, v)
			if tt.assert != nil {
				tt.assert(t, repo, v)
			}
		})
	}
}

func TestVacationService_Publish(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	begin := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 24, 18, 0, 0, 0, time.UTC)

	t.Run("owner publishes and members are notified", func(t *testing.T) {
		repo := newFakeVacationRepo()
		v := seedVacation(repo, "user-1", "Summer in Lisbon", begin, end)
		notifier := &fakeNotifier{}
		svc := NewVacationService(repo, newFakeInvitationRepo(), newFakeUserRepo(), notifier, fixedClock, timeout)

		require.NoError(t, svc.Publish(ctx, v.ID, "user-1"))
		assert.True(t, repo.byID[v.ID].Published)
		require.Len(t, notifier.published, 1)
		assert.Equal(t, v.ID, notifier.published[0].VacationID)
	})

	t.Run("accepted invitee cannot publish", func(t *testing.T) {
		repo := newFakeVacationRepo()
		v := seedVacation(repo, "user-1", "Summer in Lisbon", begin, end)
		invRepo := newFakeInvitationRepo()
		invRepo.addAccepted("user-2", v.ID)
		svc := NewVacationService(repo, invRepo, newFakeUserRepo(), &fakeNotifier{}, fixedClock, timeout)

		err := svc.Publish(ctx, v.ID, "user-2")
		require.True(t, errors.Is(err, domain.ErrForbidden))
		assert.False(t, repo.byID[v.ID].Published)
	})

	t.Run("second publish fails", func(t *testing.T) {
		repo := newFakeVacationRepo()
		v := seedVacation(repo, "user-1", "Summer in Lisbon", begin, end)
		notifier := &fakeNotifier{}
		svc := NewVacationService(repo, newFakeInvitationRepo(), newFakeUserRepo(), notifier, fixedClock, timeout)

		require.NoError(t, svc.Publish(ctx, v.ID, "user-1"))
		err := svc.Publish(ctx, v.ID, "user-1")
		require.True(t, errors.Is(err, domain.ErrAlreadyPublished))
		assert.Len(t, notifier.published, 1)
	})

	t.Run("vacation not found", func(t *testing.T) {
		svc := NewVacationService(newFakeVacationRepo(), newFakeInvitationRepo(), newFakeUserRepo(), &fakeNotifier{}, fixedClock, timeout)
		err := svc.Publish(ctx, "vac-missing", "user-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestVacationService_GetByID(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	begin := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 24, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		published bool
		invite    string // "", "pending", "accepted"
		actorID   string
		wantErr   error
	}{
		{name: "owner sees draft", actorID: "user-1"},
		{name: "stranger cannot see draft", actorID: "user-2", wantErr: domain.ErrForbidden},
		{name: "pending invitee cannot see draft", invite: "pending", actorID: "user-2", wantErr: domain.ErrForbidden},
		{name: "accepted invitee sees draft", invite: "accepted", actorID: "user-2"},
		{name: "anyone sees published", published: true, actorID: "user-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeVacationRepo()
			v := seedVacation(repo, "user-1", "Summer in Lisbon", begin, end)
			v.Published = tt.published
			invRepo := newFakeInvitationRepo()
			switch tt.invite {
			case "pending":
				invRepo.addPending(tt.actorID, v.ID)
			case "accepted":
				invRepo.addAccepted(tt.actorID, v.ID)
			}
			svc := NewVacationService(repo, invRepo, newFakeUserRepo(), &fakeNotifier{}, fixedClock, timeout)

			got, err := svc.GetByID(ctx, v.ID, tt.actorID)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, v.ID, got.ID)
		})
	}

	t.Run("not found", func(t *testing.T) {
		svc := NewVacationService(newFakeVacationRepo(), newFakeInvitationRepo(), newFakeUserRepo(), &fakeNotifier{}, fixedClock, timeout)
		_, err := svc.GetByID(ctx, "vac-missing", "user-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestVacationService_ListMembers(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	begin := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 24, 18, 0, 0, 0, time.UTC)

	repo := newFakeVacationRepo()
	v := seedVacation(repo, "user-1", "Summer in Lisbon", begin, end)
	invRepo := newFakeInvitationRepo()
	invRepo.addAccepted("user-2", v.ID)
	invRepo.addPending("user-3", v.ID)
	userRepo := newFakeUserRepo()
	userRepo.addUser("user-1", "owner@example.com")
	userRepo.addUser("user-2", "member@example.com")
	userRepo.addUser("user-3", "pending@example.com")
	svc := NewVacationService(repo, invRepo, userRepo, &fakeNotifier{}, fixedClock, timeout)

	members, err := svc.ListMembers(ctx, v.ID, "user-1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	ids := []string{members[0].ID, members[1].ID}
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, ids)

	// Pending invitees are not members and cannot list them either.
	_, err = svc.ListMembers(ctx, v.ID, "user-3")
	require.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestVacationService_ListForUser(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	begin := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 24, 18, 0, 0, 0, time.UTC)

	repo := newFakeVacationRepo()
	own := seedVacation(repo, "user-1", "Own trip", begin, end)
	other := seedVacation(repo, "user-2", "Joined trip", begin.AddDate(0, 1, 0), end.AddDate(0, 1, 0))
	repo.joined["user-1"] = []string{other.ID}
	seedVacation(repo, "user-3", "Unrelated", begin, end)
	svc := NewVacationService(repo, newFakeInvitationRepo(), newFakeUserRepo(), &fakeNotifier{}, fixedClock, timeout)

	vacations, err := svc.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, vacations, 2)
	ids := []string{vacations[0].ID, vacations[1].ID}
	assert.ElementsMatch(t, []string{own.ID, other.ID}, ids)

	empty, err := svc.ListForUser(ctx, "user-none")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Len(t, empty, 0)
}

func TestVacationService_HeadcountByCountry(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	repo := newFakeVacationRepo()
	repo.headcount = []*domain.CountryHeadcount{
		{Country: "portugal", People: 3},
		{Country: "italy", People: 1},
	}
	svc := NewVacationService(repo, newFakeInvitationRepo(), newFakeUserRepo(), &fakeNotifier{}, fixedClock, timeout)

	counts, err := svc.HeadcountByCountry(ctx, "15/06/2026")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 3, counts[0].People)

	_, err = svc.HeadcountByCountry(ctx, "June 15th")
	require.True(t, errors.Is(err, domain.ErrMalformedDateTime))
}
