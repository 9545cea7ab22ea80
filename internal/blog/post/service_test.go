// Copyright (c) 2026 Plume. All rights reserved.

package post_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/blog/category"
	"github.com/plumeblog/plume/internal/blog/post"
	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	"github.com/plumeblog/plume/internal/platform/sec"
	"github.com/plumeblog/plume/pkg/pagination"
)

var (
	author   = authz.Identity{UserID: 1, Role: sec.RoleUser}
	stranger = authz.Identity{UserID: 2, Role: sec.RoleUser}
	admin    = authz.Identity{UserID: 3, Role: sec.RoleAdmin}
)

// fakeRepository is an in-memory [post.Repository].
type fakeRepository struct {
	posts  map[int64]*post.Post
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: map[int64]*post.Post{}, nextID: 1}
}

func (f *fakeRepository) ordered() []post.Post {
	var out []post.Post
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}

func (f *fakeRepository) List(_ context.Context, params pagination.Params) ([]post.Post, int64, error) {
	all := f.ordered()
	total := int64(len(all))

	start := params.Offset()
	if start > len(all) {
		return nil, total, nil
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperr.NotFound("Request resource not found")
	}
	clone := *p
	return &clone, nil
}

func (f *fakeRepository) ListByCategoryName(_ context.Context, fragment string) ([]post.Post, error) {
	// Category names are irrelevant here; the fake matches on category id 1.
	var out []post.Post
	for _, p := range f.ordered() {
		if p.CategoryID == 1 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepository) Search(_ context.Context, filter post.SearchFilter, params pagination.Params) ([]post.Post, int64, error) {
	var matched []post.Post
	for _, p := range f.ordered() {
		if filter.UserID > 0 && p.UserID != filter.UserID {
			continue
		}
		matched = append(matched, p)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeRepository) Create(_ context.Context, p *post.Post) error {
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.nextID++
	clone := *p
	f.posts[p.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, p *post.Post) error {
	clone := *p
	f.posts[p.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteCascade(_ context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

// fakeCategories resolves only the ids it was seeded with.
type fakeCategories struct {
	known map[int64]bool
}

func (f *fakeCategories) List(_ context.Context) ([]category.Category, error) { return nil, nil }

func (f *fakeCategories) FindByID(_ context.Context, id int64) (*category.Category, error) {
	if !f.known[id] {
		return nil, apperr.NotFound("Request resource not found")
	}
	return &category.Category{ID: id, Name: "tech"}, nil
}

func (f *fakeCategories) Create(_ context.Context, _ *category.Category) error { return nil }

func (f *fakeCategories) Update(_ context.Context, _ *category.Category) error { return nil }

func (f *fakeCategories) Delete(_ context.Context, _ int64) error { return nil }

func (f *fakeCategories) CountPosts(_ context.Context, _ int64) (int64, error) { return 0, nil }

// fakeCache records hits and stores in a map.
type fakeCache struct {
	entries map[int64]*post.Post
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int64]*post.Post{}}
}

func (f *fakeCache) Get(_ context.Context, id int64) (*post.Post, error) {
	f.gets++
	if p, ok := f.entries[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeCache) Set(_ context.Context, p *post.Post) error {
	f.sets++
	clone := *p
	f.entries[p.ID] = &clone
	return nil
}

func newService(t *testing.T) (*post.Service, *fakeRepository, *fakeCache) {
	t.Helper()
	repo := newFakeRepository()
	cache := newFakeCache()
	categories := &fakeCategories{known: map[int64]bool{1: true, 2: true}}
	return post.NewService(repo, categories, cache, slog.Default()), repo, cache
}

func mustCreate(t *testing.T, service *post.Service, actor authz.Identity, categoryID int64) *post.Post {
	t.Helper()
	created, err := service.Create(context.Background(), actor, post.CreateInput{
		Title:      "Hello",
		Content:    "World",
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return created
}

/*
TestCreate covers authorship stamping and category resolution.
*/
func TestCreate(t *testing.T) {
	service, _, _ := newService(t)

	t.Run("stamps_author_and_timestamps", func(t *testing.T) {
		created := mustCreate(t, service, author, 1)
		assert.Equal(t, author.UserID, created.UserID)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("unknown_category_is_404", func(t *testing.T) {
		_, err := service.Create(context.Background(), author, post.CreateInput{
			Title:      "Hello",
			Content:    "World",
			CategoryID: 999,
		})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeNotFound, ae.Code)
		assert.Equal(t, "Category ID does not exist", ae.Message)
	})
}

/*
TestGet covers the read-through cache behavior.
*/
func TestGet(t *testing.T) {
	service, repo, cache := newService(t)
	created := mustCreate(t, service, author, 1)

	t.Run("miss_populates_cache", func(t *testing.T) {
		loaded, err := service.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, loaded.ID)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("hit_bypasses_the_store", func(t *testing.T) {
		// Mutate the store behind the cache's back; the stale cached view
		// must win until its TTL expires.
		repo.posts[created.ID].Title = "changed"

		loaded, err := service.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", loaded.Title)
	})

	t.Run("unknown_id_is_404", func(t *testing.T) {
		_, err := service.Get(context.Background(), 999)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "Post ID does not exist", ae.Message)
	})
}

/*
TestListByCategory covers the mandatory filter and the empty-result 404.
*/
func TestListByCategory(t *testing.T) {
	service, _, _ := newService(t)

	t.Run("missing_filter_is_400", func(t *testing.T) {
		_, err := service.ListByCategory(context.Background(), "")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeMissingQueryParam, ae.Code)
	})

	t.Run("no_match_is_404", func(t *testing.T) {
		_, err := service.ListByCategory(context.Background(), "tech")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeNotFound, ae.Code)
		assert.Equal(t, "No posts found for this category", ae.Message)
	})

	t.Run("matches_are_returned", func(t *testing.T) {
		mustCreate(t, service, author, 1)
		posts, err := service.ListByCategory(context.Background(), "tech")
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})
}

/*
TestList verifies the pagination meta arithmetic end to end.
*/
func TestList(t *testing.T) {
	service, _, _ := newService(t)
	for i := 0; i < 25; i++ {
		mustCreate(t, service, author, 1)
	}

	posts, meta, err := service.List(context.Background(), pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, posts, 5)
	assert.Equal(t, 25, meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

/*
TestUpdate covers the owner-only rule and the immutability of authorship.
*/
func TestUpdate(t *testing.T) {
	service, _, _ := newService(t)
	created := mustCreate(t, service, author, 1)

	newTitle := "Edited"

	t.Run("admin_cannot_edit_someone_elses_post", func(t *testing.T) {
		_, err := service.Update(context.Background(), admin, created.ID, post.UpdateInput{Title: &newTitle})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("owner_edits_partially", func(t *testing.T) {
		updated, err := service.Update(context.Background(), author, created.ID, post.UpdateInput{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Title)
		assert.Equal(t, "World", updated.Content, "unset fields stay untouched")
		assert.Equal(t, author.UserID, updated.UserID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("new_category_is_resolved", func(t *testing.T) {
		badCategory := int64(999)
		_, err := service.Update(context.Background(), author, created.ID, post.UpdateInput{CategoryID: &badCategory})
		require.Error(t, err)
		assert.Equal(t, "Category ID does not exist", apperr.As(err).Message)
	})
}

/*
TestDelete covers the owner-or-admin rule.
*/
func TestDelete(t *testing.T) {
	service, repo, _ := newService(t)

	t.Run("stranger_is_forbidden", func(t *testing.T) {
		created := mustCreate(t, service, author, 1)
		err := service.Delete(context.Background(), stranger, created.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("owner_deletes", func(t *testing.T) {
		created := mustCreate(t, service, author, 1)
		require.NoError(t, service.Delete(context.Background(), author, created.ID))
		_, ok := repo.posts[created.ID]
		assert.False(t, ok)
	})

	t.Run("admin_deletes_any_post", func(t *testing.T) {
		created := mustCreate(t, service, author, 1)
		require.NoError(t, service.Delete(context.Background(), admin, created.ID))
	})

	t.Run("unknown_id_is_404", func(t *testing.T) {
		err := service.Delete(context.Background(), author, 999)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
	})
}
