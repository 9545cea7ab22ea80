// Copyright (c) 2026 Plume. All rights reserved.

package comment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/blog/comment"
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

// fakeRepository is an in-memory [comment.Repository].
type fakeRepository struct {
	comments map[int64]*comment.Comment
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: map[int64]*comment.Comment{}, nextID: 1}
}

func (f *fakeRepository) filtered(match func(*comment.Comment) bool) []comment.Comment {
	var out []comment.Comment
	for id := int64(1); id < f.nextID; id++ {
		if c, ok := f.comments[id]; ok && match(c) {
			out = append(out, *c)
		}
	}
	return out
}

func (f *fakeRepository) ListByUser(_ context.Context, userID int64) ([]comment.Comment, error) {
	return f.filtered(func(c *comment.Comment) bool { return c.UserID == userID }), nil
}

func (f *fakeRepository) ListByPost(_ context.Context, postID int64) ([]comment.Comment, error) {
	return f.filtered(func(c *comment.Comment) bool { return c.PostID == postID }), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.NotFound("Request resource not found")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.nextID++
	clone := *c
	f.comments[c.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	clone := *c
	f.comments[c.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	delete(f.comments, id)
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

func newService(t *testing.T) (*comment.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	posts := &fakePosts{known: map[int64]bool{10: true}}
	return comment.NewService(repo, posts, slog.Default()), repo
}

/*
TestCreate covers post resolution and authorship stamping.
*/
func TestCreate(t *testing.T) {
	service, _ := newService(t)

	t.Run("unknown_post_is_404", func(t *testing.T) {
		_, err := service.Create(context.Background(), author, 999, "nice post")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "Post ID does not exist", ae.Message)
	})

	t.Run("stamps_author_and_post", func(t *testing.T) {
		created, err := service.Create(context.Background(), author, 10, "nice post")
		require.NoError(t, err)
		assert.Equal(t, author.UserID, created.UserID)
		assert.Equal(t, int64(10), created.PostID)
	})
}

/*
TestListByPost distinguishes the empty list from the missing post.
*/
func TestListByPost(t *testing.T) {
	service, _ := newService(t)

	t.Run("existing_post_with_no_comments_is_empty_200", func(t *testing.T) {
		comments, err := service.ListByPost(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("missing_post_is_404", func(t *testing.T) {
		_, err := service.ListByPost(context.Background(), 999)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
	})
}

/*
TestListMine returns only the actor's comments.
*/
func TestListMine(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Create(context.Background(), author, 10, "first")
	require.NoError(t, err)
	_, err = service.Create(context.Background(), stranger, 10, "second")
	require.NoError(t, err)

	mine, err := service.ListMine(context.Background(), author.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "first", mine[0].Content)
}

/*
TestUpdate covers the author-only rule, admin included.
*/
func TestUpdate(t *testing.T) {
	service, _ := newService(t)
	created, err := service.Create(context.Background(), author, 10, "original")
	require.NoError(t, err)

	t.Run("admin_cannot_edit_someone_elses_comment", func(t *testing.T) {
		_, err := service.Update(context.Background(), admin, created.ID, "edited")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("author_edits", func(t *testing.T) {
		updated, err := service.Update(context.Background(), author, created.ID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
	})

	t.Run("unknown_id_is_404", func(t *testing.T) {
		_, err := service.Update(context.Background(), author, 999, "edited")
		require.Error(t, err)
		assert.Equal(t, "Comment ID does not exist", apperr.As(err).Message)
	})
}

/*
TestDelete covers the author-or-admin rule.
*/
func TestDelete(t *testing.T) {
	service, repo := newService(t)

	t.Run("stranger_is_forbidden", func(t *testing.T) {
		created, err := service.Create(context.Background(), author, 10, "text")
		require.NoError(t, err)

		err = service.Delete(context.Background(), stranger, created.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("author_deletes", func(t *testing.T) {
		created, err := service.Create(context.Background(), author, 10, "text")
		require.NoError(t, err)

		require.NoError(t, service.Delete(context.Background(), author, created.ID))
		_, ok := repo.comments[created.ID]
		assert.False(t, ok)
	})

	t.Run("admin_deletes_any_comment", func(t *testing.T) {
		created, err := service.Create(context.Background(), author, 10, "text")
		require.NoError(t, err)

		require.NoError(t, service.Delete(context.Background(), admin, created.ID))
	})
}
