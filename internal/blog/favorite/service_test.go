// Copyright (c) 2026 Plume. All rights reserved.

package favorite_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/blog/favorite"
	"github.com/plumeblog/plume/internal/blog/post"
	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	"github.com/plumeblog/plume/internal/platform/sec"
	"github.com/plumeblog/plume/internal/users/account"
	"github.com/plumeblog/plume/pkg/pagination"
)

var (
	owner    = authz.Identity{UserID: 1, Role: sec.RoleUser}
	stranger = authz.Identity{UserID: 2, Role: sec.RoleUser}
	admin    = authz.Identity{UserID: 3, Role: sec.RoleAdmin}
)

// fakeRepository is an in-memory [favorite.Repository] enforcing the
// unique (user, post) pair.
type fakeRepository struct {
	favorites map[int64]*favorite.Favorite
	nextID    int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{favorites: map[int64]*favorite.Favorite{}, nextID: 1}
}

func (f *fakeRepository) ListByUser(_ context.Context, userID int64) ([]favorite.Favorite, error) {
	var out []favorite.Favorite
	for id := int64(1); id < f.nextID; id++ {
		if fav, ok := f.favorites[id]; ok && fav.UserID == userID {
			out = append(out, *fav)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListUserIDsByPost(_ context.Context, postID int64) ([]int64, error) {
	var out []int64
	for id := int64(1); id < f.nextID; id++ {
		if fav, ok := f.favorites[id]; ok && fav.PostID == postID {
			out = append(out, fav.UserID)
		}
	}
	return out, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*favorite.Favorite, error) {
	fav, ok := f.favorites[id]
	if !ok {
		return nil, apperr.NotFound("Request resource not found")
	}
	clone := *fav
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, fav *favorite.Favorite) error {
	for _, existing := range f.favorites {
		if existing.UserID == fav.UserID && existing.PostID == fav.PostID {
			return apperr.Duplicate("Data already exists")
		}
	}
	fav.ID = f.nextID
	f.nextID++
	clone := *fav
	f.favorites[fav.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	delete(f.favorites, id)
	return nil
}

// fakePosts resolves only the post ids it was seeded with.
type fakePosts struct {
	known map[int64]bool
}

func (f *fakePosts) List(_ context.Context, _ pagination.Params) ([]post.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePosts) FindByID(_ context.Context, id int64) (*post.Post, error) {
	if !f.known[id] {
		return nil, apperr.NotFound("Request resource not found")
	}
	return &post.Post{ID: id}, nil
}

func (f *fakePosts) ListByCategoryName(_ context.Context, _ string) ([]post.Post, error) {
	return nil, nil
}

func (f *fakePosts) Search(_ context.Context, _ post.SearchFilter, _ pagination.Params) ([]post.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePosts) Create(_ context.Context, _ *post.Post) error { return nil }

func (f *fakePosts) Update(_ context.Context, _ *post.Post) error { return nil }

func (f *fakePosts) DeleteCascade(_ context.Context, _ int64) error { return nil }

// fakeAccounts resolves the users it was seeded with.
type fakeAccounts struct {
	users map[int64]*account.User
}

func (f *fakeAccounts) Create(_ context.Context, _ *account.User) error { return nil }

func (f *fakeAccounts) FindByID(_ context.Context, id int64) (*account.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.UserNotFound("User ID does not exist")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeAccounts) FindByMail(_ context.Context, _ string) (*account.User, error) {
	return nil, apperr.UserNotFound("User does not exist")
}

func (f *fakeAccounts) List(_ context.Context) ([]account.User, error) { return nil, nil }

func (f *fakeAccounts) Update(_ context.Context, _ *account.User) error { return nil }

func (f *fakeAccounts) Promote(_ context.Context, _ int64) error { return nil }

func (f *fakeAccounts) DeleteCascade(_ context.Context, _ int64) error { return nil }

func newService(t *testing.T) (*favorite.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	posts := &fakePosts{known: map[int64]bool{10: true}}
	accounts := &fakeAccounts{users: map[int64]*account.User{
		1: {ID: 1, Pseudo: "alice"},
		2: {ID: 2, Pseudo: "bob"},
	}}
	return favorite.NewService(repo, posts, accounts, slog.Default()), repo
}

func TestCreate(t *testing.T) {
	t.Run("bookmarks_an_existing_post", func(t *testing.T) {
		service, _ := newService(t)

		created, err := service.Create(context.Background(), owner, 10)
		require.NoError(t, err)

		assert.Equal(t, owner.UserID, created.UserID)
		assert.Equal(t, int64(10), created.PostID)
		assert.NotZero(t, created.ID)
	})

	t.Run("missing_post_reports_404", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.Create(context.Background(), owner, 99)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeNotFound, ae.Code)
		assert.Equal(t, "Post ID does not exist", ae.Message)
	})

	t.Run("same_pair_twice_reports_409", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.Create(context.Background(), owner, 10)
		require.NoError(t, err)

		_, err = service.Create(context.Background(), owner, 10)
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("different_users_may_share_a_post", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.Create(context.Background(), owner, 10)
		require.NoError(t, err)

		_, err = service.Create(context.Background(), stranger, 10)
		require.NoError(t, err)
	})
}

func TestListMine(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Create(context.Background(), owner, 10)
	require.NoError(t, err)
	_, err = service.Create(context.Background(), stranger, 10)
	require.NoError(t, err)

	favorites, err := service.ListMine(context.Background(), owner.UserID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, owner.UserID, favorites[0].UserID)
}

func TestListUsersByPost(t *testing.T) {
	t.Run("admin_sees_the_audience", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.Create(context.Background(), owner, 10)
		require.NoError(t, err)
		_, err = service.Create(context.Background(), stranger, 10)
		require.NoError(t, err)

		users, err := service.ListUsersByPost(context.Background(), admin, 10)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Pseudo)
		assert.Equal(t, "bob", users[1].Pseudo)
	})

	t.Run("regular_user_is_denied", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.ListUsersByPost(context.Background(), owner, 10)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("missing_post_reports_404_even_to_non_admin", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.ListUsersByPost(context.Background(), owner, 99)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("deleted_accounts_are_skipped", func(t *testing.T) {
		service, repo := newService(t)

		_, err := service.Create(context.Background(), owner, 10)
		require.NoError(t, err)
		repo.favorites[1].UserID = 42

		users, err := service.ListUsersByPost(context.Background(), admin, 10)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestDelete(t *testing.T) {
	t.Run("owner_removes_own_favorite", func(t *testing.T) {
		service, repo := newService(t)

		created, err := service.Create(context.Background(), owner, 10)
		require.NoError(t, err)

		require.NoError(t, service.Delete(context.Background(), owner, created.ID))
		assert.Empty(t, repo.favorites)
	})

	t.Run("admin_cannot_remove_another_users_favorite", func(t *testing.T) {
		service, _ := newService(t)

		created, err := service.Create(context.Background(), owner, 10)
		require.NoError(t, err)

		err = service.Delete(context.Background(), admin, created.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("missing_favorite_reports_404", func(t *testing.T) {
		service, _ := newService(t)

		err := service.Delete(context.Background(), owner, 99)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}
