// Copyright (c) 2026 Plume. All rights reserved.

package category_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/blog/category"
	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	"github.com/plumeblog/plume/internal/platform/sec"
)

var (
	adminActor = authz.Identity{UserID: 1, Role: sec.RoleAdmin}
	userActor  = authz.Identity{UserID: 2, Role: sec.RoleUser}
)

// fakeRepository is an in-memory [category.Repository].
type fakeRepository struct {
	categories map[int64]*category.Category
	postCounts map[int64]int64
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories: map[int64]*category.Category{},
		postCounts: map[int64]int64{},
		nextID:     1,
	}
}

func (f *fakeRepository) List(_ context.Context) ([]category.Category, error) {
	var out []category.Category
	for id := int64(1); id < f.nextID; id++ {
		if c, ok := f.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*category.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFound("Request resource not found")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, c *category.Category) error {
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return apperr.Duplicate("Data already exists")
		}
	}
	c.ID = f.nextID
	f.nextID++
	clone := *c
	f.categories[c.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *category.Category) error {
	for id, existing := range f.categories {
		if id != c.ID && existing.Name == c.Name {
			return apperr.Duplicate("Data already exists")
		}
	}
	clone := *c
	f.categories[c.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeRepository) CountPosts(_ context.Context, id int64) (int64, error) {
	return f.postCounts[id], nil
}

func newService(t *testing.T) (*category.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return category.NewService(repo, slog.Default()), repo
}

/*
TestCreate covers admin gating and name uniqueness.
*/
func TestCreate(t *testing.T) {
	service, _ := newService(t)

	t.Run("non_admin_is_forbidden", func(t *testing.T) {
		_, err := service.Create(context.Background(), userActor, "tech")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("admin_creates", func(t *testing.T) {
		created, err := service.Create(context.Background(), adminActor, "tech")
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.NotNil(t, created.Posts, "post id list must serialize as an empty array")
	})

	t.Run("duplicate_name_is_409", func(t *testing.T) {
		_, err := service.Create(context.Background(), adminActor, "tech")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeDuplicate, ae.Code)
		assert.Equal(t, "Category already exists", ae.Message)
	})
}

/*
TestUpdate verifies the resolve-before-authorize stage order.
*/
func TestUpdate(t *testing.T) {
	service, _ := newService(t)
	created, err := service.Create(context.Background(), adminActor, "tech")
	require.NoError(t, err)

	t.Run("missing_id_reports_404_even_to_non_admin", func(t *testing.T) {
		_, err := service.Update(context.Background(), userActor, 999, "science")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
	})

	t.Run("existing_id_reports_403_to_non_admin", func(t *testing.T) {
		_, err := service.Update(context.Background(), userActor, created.ID, "science")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("admin_renames", func(t *testing.T) {
		updated, err := service.Update(context.Background(), adminActor, created.ID, "science")
		require.NoError(t, err)
		assert.Equal(t, "science", updated.Name)
	})
}

/*
TestDelete verifies the referencing-posts guard.
*/
func TestDelete(t *testing.T) {
	service, repo := newService(t)
	created, err := service.Create(context.Background(), adminActor, "tech")
	require.NoError(t, err)

	t.Run("referenced_category_is_a_conflict", func(t *testing.T) {
		repo.postCounts[created.ID] = 3

		err := service.Delete(context.Background(), adminActor, created.ID)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeStateConflict, ae.Code)
		assert.Equal(t, "Cannot delete category with existing posts", ae.Message)
	})

	t.Run("unreferenced_category_deletes", func(t *testing.T) {
		repo.postCounts[created.ID] = 0

		require.NoError(t, service.Delete(context.Background(), adminActor, created.ID))
		_, err := service.Get(context.Background(), created.ID)
		assert.Error(t, err)
	})
}
