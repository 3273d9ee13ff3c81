package users

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	mysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/platform/httpx"
)

type fakeStore struct {
	users  map[int64]*User
	emails map[string]bool
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]*User{}, emails: map[string]bool{}}
}

func (f *fakeStore) Insert(_ context.Context, u *User) error {
	if f.emails[u.Email] {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	f.emails[u.Email] = true
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, httpx.ErrNotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context) ([]User, error) {
	out := make([]User, 0, len(f.users))
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, u *User) error {
	old := f.users[u.ID]
	if old.Email != u.Email && f.emails[u.Email] {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	delete(f.emails, old.Email)
	f.emails[u.Email] = true
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if u, ok := f.users[id]; ok {
		delete(f.emails, u.Email)
		delete(f.users, id)
	}
	return nil
}

func newTestService(f *fakeStore) *Service {
	return &Service{store: f, validate: validator.New()}
}

func TestCreateUser(t *testing.T) {
	t.Run("assigns an id", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		res, err := svc.Create(context.Background(), CreateUserRequest{Name: "alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		_, err := svc.Create(context.Background(), CreateUserRequest{Name: "alice", Email: "alice@example.com"})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateUserRequest{Name: "other", Email: "alice@example.com"})
		assert.Equal(t, 409, httpx.ToHTTPStatus(err))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		_, err := svc.Create(context.Background(), CreateUserRequest{Name: "   ", Email: "a@example.com"})
		assert.Equal(t, 400, httpx.ToHTTPStatus(err))
	})
}

func TestUpdateUser(t *testing.T) {
	setup := func(t *testing.T) (*Service, int64) {
		svc := newTestService(newFakeStore())
		res, err := svc.Create(context.Background(), CreateUserRequest{Name: "alice", Email: "alice@example.com"})
		require.NoError(t, err)
		return svc, res.ID
	}

	t.Run("nil fields keep stored values", func(t *testing.T) {
		svc, id := setup(t)
		name := "alice cooper"
		res, err := svc.Update(context.Background(), id, UpdateUserRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "alice cooper", res.Name)
		assert.Equal(t, "alice@example.com", res.Email)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		svc, id := setup(t)
		bad := "not-an-email"
		_, err := svc.Update(context.Background(), id, UpdateUserRequest{Email: &bad})
		assert.Equal(t, 400, httpx.ToHTTPStatus(err))
	})

	t.Run("taken email conflicts", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.Create(context.Background(), CreateUserRequest{Name: "bob", Email: "bob@example.com"})
		require.NoError(t, err)

		taken := "bob@example.com"
		_, err = svc.Update(context.Background(), id, UpdateUserRequest{Email: &taken})
		assert.Equal(t, 409, httpx.ToHTTPStatus(err))
	})

	t.Run("absent user is not found", func(t *testing.T) {
		svc, _ := setup(t)
		name := "x"
		_, err := svc.Update(context.Background(), 99, UpdateUserRequest{Name: &name})
		assert.Equal(t, 404, httpx.ToHTTPStatus(err))
	})
}

func TestGetAndDeleteUser(t *testing.T) {
	svc := newTestService(newFakeStore())
	res, err := svc.Create(context.Background(), CreateUserRequest{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(context.Background(), res.ID))
	_, err = svc.GetByID(context.Background(), res.ID)
	assert.Equal(t, 404, httpx.ToHTTPStatus(err))
}

var _ store = (*fakeStore)(nil)
var _ store = (*Store)(nil)
