package games

import (
	"context"
	"testing"
	"time"

	"raffle-server/internal/notify"
	"raffle-server/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	games    map[string]*store.Game
	seats    map[string][]store.SeatWithUser
	approved map[string][]store.User
	pending  map[string][]store.JoinRequestWithUser
	emails   []string

	created     *store.Game
	createdRows []store.Seat
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:    map[string]*store.Game{},
		seats:    map[string][]store.SeatWithUser{},
		approved: map[string][]store.User{},
		pending:  map[string][]store.JoinRequestWithUser{},
	}
}

func (f *fakeStore) CreateGameWithSeats(_ context.Context, g *store.Game, seats []store.Seat) error {
	g.ID = "row-" + g.PublicID
	g.CreatedAt = time.Now()
	f.games[g.PublicID] = g
	f.created = g
	f.createdRows = seats
	return nil
}

func (f *fakeStore) GetGameByPublicID(_ context.Context, publicID string) (*store.Game, error) {
	g, ok := f.games[publicID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeStore) ListGamesByStatus(_ context.Context, status string) ([]store.Game, error) {
	var out []store.Game
	for _, g := range f.games {
		if g.Status == status {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkGameEnded(_ context.Context, gameID string) (bool, error) {
	for _, g := range f.games {
		if g.ID == gameID && g.Status == store.GameStatusActive {
			g.Status = store.GameStatusEnded
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListSeatsWithUsers(_ context.Context, gameID string) ([]store.SeatWithUser, error) {
	return f.seats[gameID], nil
}

func (f *fakeStore) ListApprovedUsers(_ context.Context, gameID string) ([]store.User, error) {
	return f.approved[gameID], nil
}

func (f *fakeStore) ListPendingRequests(_ context.Context, gameID string) ([]store.JoinRequestWithUser, error) {
	return f.pending[gameID], nil
}

func (f *fakeStore) ListUserEmails(_ context.Context) ([]string, error) {
	return f.emails, nil
}

type fixedIDs struct{ id string }

func (f fixedIDs) Next(context.Context) (string, error) { return f.id, nil }

type countingNotifier struct{ calls int }

func (c *countingNotifier) Notify(context.Context, []string, string, string) error {
	c.calls++
	return nil
}

func newTestService(fs *fakeStore, id string) (*Service, *countingNotifier, *notify.Dispatcher) {
	n := &countingNotifier{}
	d := notify.NewDispatcher(n, 8, time.Second)
	return NewService(fs, fixedIDs{id: id}, d), n, d
}

func validInput() CreateInput {
	return CreateInput{
		Name:       "Summer Raffle",
		TotalSeats: 3,
		FreeSeats:  1,
		PaidSeats:  2,
		Seats: []SeatSpec{
			{SeatNumber: 1, IsPaid: false, PriceCents: 500},
			{SeatNumber: 2, IsPaid: true, PriceCents: 1000},
			{SeatNumber: 3, IsPaid: true, PriceCents: 2000},
		},
	}
}

func TestCreatePersistsGameAndSeats(t *testing.T) {
	fs := newFakeStore()
	fs.emails = []string{"u@example.com"}
	svc, n, d := newTestService(fs, "game-AAA-0001")

	got, err := svc.Create(context.Background(), "admin-1", validInput())
	require.NoError(t, err)
	require.Equal(t, "game-AAA-0001", got.GameID)
	require.Equal(t, store.GameStatusActive, got.Status)

	require.NotNil(t, fs.created)
	require.Equal(t, "admin-1", fs.created.CreatedBy)
	require.Len(t, fs.createdRows, 3)
	// is_paid decides the persisted price, not the spec's price field
	require.False(t, fs.createdRows[0].IsPaid)
	require.Zero(t, fs.createdRows[0].PriceCents)
	require.Equal(t, int64(1000), fs.createdRows[1].PriceCents)

	d.Close()
	require.Equal(t, 1, n.calls)
}

func TestCreateValidationFailures(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs, "game-AAA-0001")
	defer d.Close()

	cases := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr error
	}{
		{"count mismatch", func(in *CreateInput) { in.FreeSeats = 2 }, ErrSeatCountMismatch},
		{"spec count", func(in *CreateInput) { in.Seats = in.Seats[:2] }, ErrSpecCountMismatch},
		{"paid count", func(in *CreateInput) { in.Seats[1].IsPaid = false }, ErrPaidCountMismatch},
		{"negative price", func(in *CreateInput) { in.Seats[2].PriceCents = -1 }, ErrInvalidSeatPrice},
		{"zero seat number", func(in *CreateInput) { in.Seats[0].SeatNumber = 0 }, ErrInvalidSeatNumber},
		{"duplicate seat number", func(in *CreateInput) { in.Seats[1].SeatNumber = 1 }, ErrInvalidSeatNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), "admin-1", in)
			require.ErrorIs(t, err, tc.wantErr)
			require.Nil(t, fs.created, "validation failure must not write anything")
		})
	}
}

func TestEndIsSingleShot(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs, "game-AAA-0001")
	defer d.Close()

	_, err := svc.Create(context.Background(), "admin-1", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.End(context.Background(), "game-AAA-0001"))
	require.ErrorIs(t, svc.End(context.Background(), "game-AAA-0001"), ErrAlreadyEnded)
	require.ErrorIs(t, svc.End(context.Background(), "game-ZZZ-9999"), ErrGameNotFound)
}

func TestLeaderboardRequiresEndedGame(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs, "game-AAA-0001")
	defer d.Close()

	_, err := svc.Create(context.Background(), "admin-1", validInput())
	require.NoError(t, err)

	_, err = svc.Leaderboard(context.Background(), "game-AAA-0001")
	require.ErrorIs(t, err, ErrGameActive)
}

func TestLeaderboardListsOccupiedPaidSeatsOnly(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs, "game-AAA-0001")
	defer d.Close()

	_, err := svc.Create(context.Background(), "admin-1", validInput())
	require.NoError(t, err)
	require.NoError(t, svc.End(context.Background(), "game-AAA-0001"))

	uid := "user-1"
	fs.seats[fs.created.ID] = []store.SeatWithUser{
		{Seat: store.Seat{ID: "s1", SeatNumber: 1, IsPaid: false, IsOccupied: true, UserID: &uid}},
		{Seat: store.Seat{ID: "s2", SeatNumber: 2, IsPaid: true, PriceCents: 1000, IsOccupied: true, UserID: &uid, IsWinner: true}, Username: "alice", Email: "a@example.com"},
		{Seat: store.Seat{ID: "s3", SeatNumber: 3, IsPaid: true, PriceCents: 2000}},
	}

	entries, err := svc.Leaderboard(context.Background(), "game-AAA-0001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "s2", entries[0].SeatID)
	require.Equal(t, "002", entries[0].SeatLabel)
	require.True(t, entries[0].IsWinner)
	require.NotNil(t, entries[0].User)
	require.Equal(t, "alice", entries[0].User.Username)
}

func TestGetAggregatesSeatAndRequestState(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs, "game-AAA-0001")
	defer d.Close()

	_, err := svc.Create(context.Background(), "admin-1", validInput())
	require.NoError(t, err)

	fs.seats[fs.created.ID] = []store.SeatWithUser{
		{Seat: store.Seat{ID: "s1", SeatNumber: 1}},
	}
	fs.approved[fs.created.ID] = []store.User{{ID: "user-1", Username: "alice"}}
	fs.pending[fs.created.ID] = []store.JoinRequestWithUser{
		{JoinRequest: store.JoinRequest{ID: "req-1", UserID: "user-2", Status: store.RequestStatusPending}, Username: "bob"},
	}

	detail, err := svc.Get(context.Background(), "game-AAA-0001")
	require.NoError(t, err)
	require.Len(t, detail.Seats, 1)
	require.Equal(t, "001", detail.Seats[0].SeatLabel)
	require.Len(t, detail.ApprovedUsers, 1)
	require.Len(t, detail.PendingRequests, 1)
	require.Equal(t, "bob", detail.PendingRequests[0].Username)
}

func TestListSplitsByStatus(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs, "game-AAA-0001")
	defer d.Close()

	_, err := svc.Create(context.Background(), "admin-1", validInput())
	require.NoError(t, err)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, svc.End(context.Background(), "game-AAA-0001"))

	active, err = svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Empty(t, active)

	ended, err := svc.ListEnded(context.Background())
	require.NoError(t, err)
	require.Len(t, ended, 1)
}
