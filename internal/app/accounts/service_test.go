package accounts

import (
	"context"
	"testing"
	"time"

	"raffle-server/internal/auth"
	"raffle-server/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users  map[string]*store.User
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*store.User{}}
}

func (f *fakeStore) CreateUser(_ context.Context, u *store.User) error {
	for _, ex := range f.users {
		if ex.Username == u.Username || ex.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = "user-" + string(rune('0'+f.nextID))
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
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

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*store.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) UpdateUser(_ context.Context, u *store.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func newTestService() (*Service, *fakeStore, *auth.Tokens) {
	fs := newFakeStore()
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewService(fs, tokens), fs, tokens
}

func register(t *testing.T, svc *Service, username string) *Session {
	t.Helper()
	sess, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse",
	}, store.RoleUser)
	require.NoError(t, err)
	return sess
}

func TestRegisterIssuesRoleToken(t *testing.T) {
	svc, _, tokens := newTestService()

	sess := register(t, svc, "alice")
	require.Equal(t, "alice", sess.Account.Username)
	require.Equal(t, store.RoleUser, sess.Account.Role)

	claims, err := tokens.Parse(sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess.Account.UserID, claims.UserID)
	require.Equal(t, store.RoleUser, claims.Role)
}

func TestRegisterRejectsTakenIdentity(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "correct horse",
	}, store.RoleUser)
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "alice@example.com", Password: "correct horse",
	}, store.RoleUser)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@example.com", Password: "short",
	}, store.RoleUser)
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@example.com", Password: "correct horse",
	}, "superuser")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestLoginChecksPasswordAndRole(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "alice")

	sess, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "correct horse"}, store.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	_, err = svc.Login(context.Background(), LoginInput{Username: "alice", Password: "wrong"}, store.RoleUser)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// a user cannot log in through the admin door
	_, err = svc.Login(context.Background(), LoginInput{Username: "alice", Password: "correct horse"}, store.RoleAdmin)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "correct horse"}, store.RoleUser)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileRequiresCurrentPassword(t *testing.T) {
	svc, _, _ := newTestService()
	sess := register(t, svc, "alice")

	_, err := svc.UpdateProfile(context.Background(), sess.Account.UserID, UpdateProfileInput{
		CurrentPassword: "wrong", Email: "new@example.com",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileChangesIdentityAndPassword(t *testing.T) {
	svc, fs, _ := newTestService()
	sess := register(t, svc, "alice")

	updated, err := svc.UpdateProfile(context.Background(), sess.Account.UserID, UpdateProfileInput{
		CurrentPassword: "correct horse",
		Username:        "alice2",
		NewPassword:     "even better pass",
	})
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Account.Username)
	require.Equal(t, "alice@example.com", updated.Account.Email)

	stored := fs.users[sess.Account.UserID]
	ok, err := auth.VerifyPassword("even better pass", stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Login(context.Background(), LoginInput{Username: "alice2", Password: "even better pass"}, store.RoleUser)
	require.NoError(t, err)
}

func TestUpdateProfileRejectsTakenUsername(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "alice")
	sess := register(t, svc, "bob")

	_, err := svc.UpdateProfile(context.Background(), sess.Account.UserID, UpdateProfileInput{
		CurrentPassword: "correct horse",
		Username:        "alice",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}
