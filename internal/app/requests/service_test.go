package requests

import (
	"context"
	"testing"
	"time"

	"raffle-server/internal/notify"
	"raffle-server/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	game     *store.Game
	requests map[string]*store.JoinRequest
	approved map[string]bool
	users    map[string]*store.User
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		game: &store.Game{
			ID:       "g-row",
			PublicID: "game-AAA-0001",
			Status:   store.GameStatusActive,
		},
		requests: map[string]*store.JoinRequest{},
		approved: map[string]bool{},
		users: map[string]*store.User{
			"user-1": {ID: "user-1", Username: "alice", Email: "a@example.com"},
		},
	}
}

func (f *fakeStore) GetGameByPublicID(_ context.Context, publicID string) (*store.Game, error) {
	if publicID != f.game.PublicID {
		return nil, store.ErrNotFound
	}
	cp := *f.game
	return &cp, nil
}

func (f *fakeStore) CreateJoinRequest(_ context.Context, r *store.JoinRequest) error {
	for _, ex := range f.requests {
		if ex.GameID == r.GameID && ex.UserID == r.UserID {
			return store.ErrDuplicate
		}
	}
	f.nextID++
	r.ID = "req-" + string(rune('0'+f.nextID))
	r.Status = store.RequestStatusPending
	r.CreatedAt = time.Now()
	f.requests[r.ID] = r
	return nil
}

func (f *fakeStore) GetJoinRequest(_ context.Context, id string) (*store.JoinRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) FindJoinRequest(_ context.Context, gameID, userID string) (*store.JoinRequest, error) {
	for _, r := range f.requests {
		if r.GameID == gameID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListPendingRequests(_ context.Context, gameID string) ([]store.JoinRequestWithUser, error) {
	out := []store.JoinRequestWithUser{}
	for _, r := range f.requests {
		if r.GameID == gameID && r.Status == store.RequestStatusPending {
			rw := store.JoinRequestWithUser{JoinRequest: *r}
			if u, ok := f.users[r.UserID]; ok {
				rw.Username = u.Username
				rw.Email = u.Email
			}
			out = append(out, rw)
		}
	}
	return out, nil
}

func (f *fakeStore) DecideJoinRequest(_ context.Context, id, status string) (bool, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != store.RequestStatusPending {
		return false, nil
	}
	now := time.Now()
	r.Status = status
	r.DecidedAt = &now
	return true, nil
}

func (f *fakeStore) AddApprovedUser(_ context.Context, gameID, userID string) error {
	f.approved[gameID+"/"+userID] = true
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*store.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type recordingNotifier struct{ subjects []string }

func (r *recordingNotifier) Notify(_ context.Context, _ []string, subject, _ string) error {
	r.subjects = append(r.subjects, subject)
	return nil
}

func newTestService(fs *fakeStore) (*Service, *recordingNotifier, *notify.Dispatcher) {
	n := &recordingNotifier{}
	d := notify.NewDispatcher(n, 8, time.Second)
	return NewService(fs, d), n, d
}

func TestCreateFilesPendingRequest(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs)
	defer d.Close()

	got, err := svc.Create(context.Background(), "user-1", "game-AAA-0001")
	require.NoError(t, err)
	require.Equal(t, store.RequestStatusPending, got.Status)
	require.NotEmpty(t, got.RequestID)
}

func TestCreateIsOncePerUserPerGame(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs)
	defer d.Close()

	_, err := svc.Create(context.Background(), "user-1", "game-AAA-0001")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "user-1", "game-AAA-0001")
	require.ErrorIs(t, err, ErrAlreadyRequested)
}

func TestCreateRejectsEndedOrMissingGame(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs)
	defer d.Close()

	_, err := svc.Create(context.Background(), "user-1", "game-ZZZ-9999")
	require.ErrorIs(t, err, ErrGameNotFound)

	fs.game.Status = store.GameStatusEnded
	_, err = svc.Create(context.Background(), "user-1", "game-AAA-0001")
	require.ErrorIs(t, err, ErrGameEnded)
}

func TestDecideApproveGrantsMembership(t *testing.T) {
	fs := newFakeStore()
	svc, n, d := newTestService(fs)

	got, err := svc.Create(context.Background(), "user-1", "game-AAA-0001")
	require.NoError(t, err)

	require.NoError(t, svc.Decide(context.Background(), got.RequestID, store.RequestStatusApproved))
	require.True(t, fs.approved["g-row/user-1"])

	d.Close()
	require.Equal(t, []string{"Join request approved"}, n.subjects)
}

func TestDecideIsSingleShot(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs)
	defer d.Close()

	got, err := svc.Create(context.Background(), "user-1", "game-AAA-0001")
	require.NoError(t, err)

	require.NoError(t, svc.Decide(context.Background(), got.RequestID, store.RequestStatusRejected))
	require.ErrorIs(t, svc.Decide(context.Background(), got.RequestID, store.RequestStatusApproved),
		ErrAlreadyDecided)
	require.False(t, fs.approved["g-row/user-1"])
}

func TestDecideValidatesInput(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs)
	defer d.Close()

	require.ErrorIs(t, svc.Decide(context.Background(), "req-x", "maybe"), ErrInvalidRequest)
	require.ErrorIs(t, svc.Decide(context.Background(), "req-x", store.RequestStatusApproved),
		ErrRequestNotFound)
}

func TestListPendingJoinsUserIdentity(t *testing.T) {
	fs := newFakeStore()
	svc, _, d := newTestService(fs)
	defer d.Close()

	_, err := svc.Create(context.Background(), "user-1", "game-AAA-0001")
	require.NoError(t, err)

	items, err := svc.ListPending(context.Background(), "game-AAA-0001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "alice", items[0].Username)
	require.Equal(t, store.RequestStatusPending, items[0].Status)
}
