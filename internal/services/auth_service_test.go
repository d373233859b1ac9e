package services

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users  map[int64]core.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]core.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return core.User{}, core.ErrDuplicateEmail
		}
	}
	u := core.User{ID: f.nextID, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	u, ok := f.users[id]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (f *fakeUserStore) SaveUser(ctx context.Context, u core.User) (core.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return core.User{}, core.ErrUserNotFound
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return core.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func newTestAuthService(store UserStore) *AuthService {
	return NewAuthService(store, "unit-test-secret-0123456789", time.Hour)
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	u, err := svc.Register(context.Background(), "Mario", "mario@example.com", "s3cret-pw")
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	stored := store.users[u.ID]
	assert.NotEqual(t, "s3cret-pw", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pw")))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "", "mario@example.com", "pw")
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = svc.Register(context.Background(), "Mario", "  ", "pw")
	assert.ErrorIs(t, err, core.ErrEmptyEmail)

	_, err = svc.Register(context.Background(), "Mario", "mario@example.com", "")
	assert.ErrorIs(t, err, core.ErrEmptyPassword)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "Mario", "mario@example.com", "pw-one")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Mario", "mario@example.com", "pw-two")
	assert.ErrorIs(t, err, core.ErrDuplicateEmail)
}

func TestAuthService_LoginTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	registered, err := svc.Register(context.Background(), "Mario", "mario@example.com", "s3cret-pw")
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "mario@example.com", "s3cret-pw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestAuthService_LoginWrongCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "Mario", "mario@example.com", "s3cret-pw")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "mario@example.com", "wrong-pw")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret-pw")
	assert.ErrorIs(t, err, core.ErrUnauthenticated, "unknown email must be indistinguishable from a bad password")
}

func TestAuthService_VerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestAuthService_VerifyTokenRejectsForeignSecret(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	other := NewAuthService(store, "a-different-secret-9876543210", time.Hour)

	_, err := svc.Register(context.Background(), "Mario", "mario@example.com", "s3cret-pw")
	require.NoError(t, err)
	_, token, err := other.Login(context.Background(), "mario@example.com", "s3cret-pw")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestAuthService_VerifyTokenRejectsExpired(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "unit-test-secret-0123456789", -time.Minute)

	_, err := svc.Register(context.Background(), "Mario", "mario@example.com", "s3cret-pw")
	require.NoError(t, err)
	_, token, err := svc.Login(context.Background(), "mario@example.com", "s3cret-pw")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestAuthService_UpdateProfileRehashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	u, err := svc.Register(context.Background(), "Mario", "mario@example.com", "old-pw")
	require.NoError(t, err)

	newName := "Mario Rossi"
	newPassword := "new-pw"
	updated, err := svc.UpdateProfile(context.Background(), u.ID, UserPatch{Name: &newName, Password: &newPassword})
	require.NoError(t, err)
	assert.Equal(t, "Mario Rossi", updated.Name)

	_, _, err = svc.Login(context.Background(), "mario@example.com", "old-pw")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
	_, _, err = svc.Login(context.Background(), "mario@example.com", "new-pw")
	assert.NoError(t, err)
}

func TestAuthService_UpdateProfileRejectsEmptyFields(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	u, err := svc.Register(context.Background(), "Mario", "mario@example.com", "pw")
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateProfile(context.Background(), u.ID, UserPatch{Email: &empty})
	assert.ErrorIs(t, err, core.ErrEmptyEmail)

	_, err = svc.UpdateProfile(context.Background(), u.ID, UserPatch{Password: &empty})
	assert.ErrorIs(t, err, core.ErrEmptyPassword)
}

func TestAuthService_DeleteAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	u, err := svc.Register(context.Background(), "Mario", "mario@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), u.ID))
	_, err = svc.GetProfile(context.Background(), u.ID)
	assert.ErrorIs(t, err, core.ErrUserNotFound)
}
