package items

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/platform/httpx"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeStore struct {
	users    map[int64]string
	requests map[int64]bool
	items    map[int64]*Item
	comments map[int64][]Comment
	last     map[int64]*BookingRef
	next     map[int64]*BookingRef
	finished map[[2]int64]bool // item id, user id
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[int64]string{},
		requests: map[int64]bool{},
		items:    map[int64]*Item{},
		comments: map[int64][]Comment{},
		last:     map[int64]*BookingRef{},
		next:     map[int64]*BookingRef{},
		finished: map[[2]int64]bool{},
	}
}

func (f *fakeStore) UserExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeStore) UserName(_ context.Context, id int64) (string, error) {
	name, ok := f.users[id]
	if !ok {
		return "", httpx.ErrNotFound("user not found")
	}
	return name, nil
}

func (f *fakeStore) RequestExists(_ context.Context, id int64) (bool, error) {
	return f.requests[id], nil
}

func (f *fakeStore) Insert(_ context.Context, it *Item) error {
	f.nextID++
	it.ID = f.nextID
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, httpx.ErrNotFound("item not found")
	}
	cp := *it
	return &cp, nil
}

func (f *fakeStore) ListByOwner(_ context.Context, ownerID int64, limit, offset int) ([]Item, int64, error) {
	var all []Item
	for id := int64(1); id <= f.nextID; id++ {
		if it, ok := f.items[id]; ok && it.OwnerID == ownerID {
			all = append(all, *it)
		}
	}
	return page(all, limit, offset)
}

func (f *fakeStore) Search(_ context.Context, text string, limit, offset int) ([]Item, int64, error) {
	needle := strings.ToLower(text)
	var all []Item
	for id := int64(1); id <= f.nextID; id++ {
		it, ok := f.items[id]
		if !ok || !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), needle) || strings.Contains(strings.ToLower(it.Description), needle) {
			all = append(all, *it)
		}
	}
	return page(all, limit, offset)
}

func page(all []Item, limit, offset int) ([]Item, int64, error) {
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeStore) Update(_ context.Context, it *Item) error {
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f *fakeStore) InsertComment(_ context.Context, cm *Comment) error {
	f.nextID++
	cm.ID = f.nextID
	f.comments[cm.ItemID] = append(f.comments[cm.ItemID], *cm)
	return nil
}

func (f *fakeStore) CommentsForItem(_ context.Context, itemID int64) ([]Comment, error) {
	return f.comments[itemID], nil
}

func (f *fakeStore) LastBooking(_ context.Context, itemID int64, _ time.Time) (*BookingRef, error) {
	return f.last[itemID], nil
}

func (f *fakeStore) NextBooking(_ context.Context, itemID int64, _ time.Time) (*BookingRef, error) {
	return f.next[itemID], nil
}

func (f *fakeStore) HasFinishedBooking(_ context.Context, itemID, userID int64, _ time.Time) (bool, error) {
	return f.finished[[2]int64{itemID, userID}], nil
}

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(f *fakeStore) *Service {
	return &Service{store: f, clock: fixedClock{t: testNow}}
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestCreateItem(t *testing.T) {
	t.Run("creates item for existing owner", func(t *testing.T) {
		f := newFakeStore()
		f.users[1] = "alice"
		svc := newTestService(f)

		res, err := svc.Create(context.Background(), CreateItemRequest{Name: "drill", Description: "power drill", Available: boolPtr(true)}, 1)
		require.NoError(t, err)
		assert.NotZero(t, res.ID)
		assert.True(t, res.Available)
		assert.Nil(t, res.RequestID)
	})

	t.Run("unknown owner is not found", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f)

		_, err := svc.Create(context.Background(), CreateItemRequest{Name: "drill", Description: "d", Available: boolPtr(true)}, 9)
		assert.Equal(t, 404, httpx.ToHTTPStatus(err))
	})

	t.Run("unknown originating request is not found", func(t *testing.T) {
		f := newFakeStore()
		f.users[1] = "alice"
		svc := newTestService(f)

		_, err := svc.Create(context.Background(), CreateItemRequest{Name: "drill", Description: "d", Available: boolPtr(true), RequestID: int64Ptr(5)}, 1)
		assert.Equal(t, 404, httpx.ToHTTPStatus(err))
	})

	t.Run("request reference is kept", func(t *testing.T) {
		f := newFakeStore()
		f.users[1] = "alice"
		f.requests[5] = true
		svc := newTestService(f)

		res, err := svc.Create(context.Background(), CreateItemRequest{Name: "drill", Description: "d", Available: boolPtr(true), RequestID: int64Ptr(5)}, 1)
		require.NoError(t, err)
		require.NotNil(t, res.RequestID)
		assert.Equal(t, int64(5), *res.RequestID)
	})
}

func TestGetItemBookingViews(t *testing.T) {
	f := newFakeStore()
	f.users[1] = "alice"
	f.users[2] = "bob"
	svc := newTestService(f)

	res, err := svc.Create(context.Background(), CreateItemRequest{Name: "drill", Description: "d", Available: boolPtr(true)}, 1)
	require.NoError(t, err)

	f.last[res.ID] = &BookingRef{ID: 7, BookerID: 2, Start: testNow.Add(-2 * time.Hour), End: testNow.Add(-time.Hour)}
	f.next[res.ID] = &BookingRef{ID: 8, BookerID: 2, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}

	t.Run("owner sees last and next bookings", func(t *testing.T) {
		full, err := svc.GetByID(context.Background(), res.ID, 1)
		require.NoError(t, err)
		require.NotNil(t, full.LastBooking)
		require.NotNil(t, full.NextBooking)
		assert.Equal(t, int64(7), full.LastBooking.ID)
		assert.Equal(t, int64(8), full.NextBooking.ID)
	})

	t.Run("other viewers do not", func(t *testing.T) {
		full, err := svc.GetByID(context.Background(), res.ID, 2)
		require.NoError(t, err)
		assert.Nil(t, full.LastBooking)
		assert.Nil(t, full.NextBooking)
	})
}

func TestUpdateItem(t *testing.T) {
	setup := func(t *testing.T) (*Service, int64) {
		f := newFakeStore()
		f.users[1] = "alice"
		svc := newTestService(f)
		res, err := svc.Create(context.Background(), CreateItemRequest{Name: "drill", Description: "d", Available: boolPtr(true)}, 1)
		require.NoError(t, err)
		return svc, res.ID
	}

	t.Run("applies only non-nil fields", func(t *testing.T) {
		svc, id := setup(t)
		res, err := svc.Update(context.Background(), id, UpdateItemRequest{Available: boolPtr(false)}, 1)
		require.NoError(t, err)
		assert.Equal(t, "drill", res.Name)
		assert.False(t, res.Available)

		res, err = svc.Update(context.Background(), id, UpdateItemRequest{Name: strPtr("hammer")}, 1)
		require.NoError(t, err)
		assert.Equal(t, "hammer", res.Name)
		assert.False(t, res.Available)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.Update(context.Background(), id, UpdateItemRequest{Name: strPtr("x")}, 2)
		assert.Equal(t, 403, httpx.ToHTTPStatus(err))
	})

	t.Run("absent item is not found", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.Update(context.Background(), 999, UpdateItemRequest{Name: strPtr("x")}, 1)
		assert.Equal(t, 404, httpx.ToHTTPStatus(err))
	})
}

func TestSearchItems(t *testing.T) {
	f := newFakeStore()
	f.users[1] = "alice"
	svc := newTestService(f)

	mk := func(name, desc string, available bool) {
		_, err := svc.Create(context.Background(), CreateItemRequest{Name: name, Description: desc, Available: boolPtr(available)}, 1)
		require.NoError(t, err)
	}
	mk("power drill", "800W", true)
	mk("hand drill", "manual", false)
	mk("ladder", "3m aluminium drill-free", true)

	t.Run("matches name or description of available items", func(t *testing.T) {
		res, err := svc.Search(context.Background(), "drill", 0, 10)
		require.NoError(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("blank text returns empty without error", func(t *testing.T) {
		res, err := svc.Search(context.Background(), "   ", 0, 10)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("overshoot falls back to the last page", func(t *testing.T) {
		res, err := svc.Search(context.Background(), "drill", 42, 1)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})
}

func TestAddComment(t *testing.T) {
	setup := func(t *testing.T) (*Service, *fakeStore, int64) {
		f := newFakeStore()
		f.users[1] = "alice"
		f.users[2] = "bob"
		svc := newTestService(f)
		res, err := svc.Create(context.Background(), CreateItemRequest{Name: "drill", Description: "d", Available: boolPtr(true)}, 1)
		require.NoError(t, err)
		return svc, f, res.ID
	}

	t.Run("requires a finished approved booking", func(t *testing.T) {
		svc, _, id := setup(t)
		_, err := svc.AddComment(context.Background(), id, 2, CreateCommentRequest{Text: "great"})
		assert.Equal(t, 400, httpx.ToHTTPStatus(err))
	})

	t.Run("stores comment with author name and server time", func(t *testing.T) {
		svc, f, id := setup(t)
		f.finished[[2]int64{id, 2}] = true

		res, err := svc.AddComment(context.Background(), id, 2, CreateCommentRequest{Text: "great"})
		require.NoError(t, err)
		assert.Equal(t, "bob", res.AuthorName)
		assert.Equal(t, testNow, res.Created)

		full, err := svc.GetByID(context.Background(), id, 2)
		require.NoError(t, err)
		require.Len(t, full.Comments, 1)
		assert.Equal(t, "great", full.Comments[0].Text)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		svc, f, id := setup(t)
		f.finished[[2]int64{id, 2}] = true
		_, err := svc.AddComment(context.Background(), id, 2, CreateCommentRequest{Text: "  "})
		assert.Equal(t, 400, httpx.ToHTTPStatus(err))
	})
}

var _ store = (*fakeStore)(nil)
var _ store = (*Store)(nil)
