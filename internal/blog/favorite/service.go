// Copyright (c) 2026 Plume. All rights reserved.

package favorite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plumeblog/plume/internal/blog/post"
	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	"github.com/plumeblog/plume/internal/users/account"
)

// # Service Layer

// Service orchestrates business logic for favorites.
type Service struct {
	repository Repository
	posts      post.Repository
	accounts   account.Repository
	logger     *slog.Logger
}

// NewService constructs a new favorite [Service].
func NewService(repository Repository, posts post.Repository, accounts account.Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		posts:      posts,
		accounts:   accounts,
		logger:     logger,
	}
}

// resolvePost maps a missing post onto its dedicated 404.
func (service *Service) resolvePost(context context.Context, postID int64) error {
	if _, err := service.posts.FindByID(context, postID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Post ID does not exist")
		}
		return err
	}
	return nil
}

// # Read Operations

/*
ListMine returns every favorite owned by the acting user.
*/
func (service *Service) ListMine(context context.Context, userID int64) ([]Favorite, error) {
	favorites, err := service.repository.ListByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite_service_list_mine_failed: %w", err)
	}
	return favorites, nil
}

/*
ListUsersByPost returns the accounts of every user who favorited the post.
Admin-only.

Description: Stage order is resolve then authorize. Accounts deleted since
they favorited are skipped rather than failing the whole listing.

Returns:
  - []account.User: The post's audience
  - error: apperr.NotFound (post), apperr.Forbidden
*/
func (service *Service) ListUsersByPost(context context.Context, actor authz.Identity, postID int64) ([]account.User, error) {

	// 1. Resolve the post
	if err := service.resolvePost(context, postID); err != nil {
		return nil, err
	}

	// 2. Authorize
	if err := authz.CanListPostFavorites(actor); err != nil {
		return nil, err
	}

	// 3. Hydrate the audience
	userIDs, err := service.repository.ListUserIDsByPost(context, postID)
	if err != nil {
		return nil, fmt.Errorf("favorite_service_list_users_failed: %w", err)
	}

	users := make([]account.User, 0, len(userIDs))
	for _, userID := range userIDs {
		user, err := service.accounts.FindByID(context, userID)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		users = append(users, *user)
	}

	return users, nil
}

// # Write Operations

/*
Create bookmarks a post for the acting user.

Description: The post is resolved first, then the insert runs against the
unique (user, post) constraint; a second favorite of the same post is a
409 even under concurrent requests.

Returns:
  - *Favorite: The created entity
  - error: apperr.NotFound (post), apperr.Duplicate
*/
func (service *Service) Create(context context.Context, actor authz.Identity, postID int64) (*Favorite, error) {

	// 1. Resolve the referenced post
	if err := service.resolvePost(context, postID); err != nil {
		return nil, err
	}

	// 2. Insert; the pair constraint turns repeats into a 409
	favorite := &Favorite{UserID: actor.UserID, PostID: postID}
	if err := service.repository.Create(context, favorite); err != nil {
		return nil, err
	}

	service.logger.Info("favorite_created",
		slog.Int64("favorite_id", favorite.ID),
		slog.Int64("post_id", postID),
	)

	return favorite, nil
}

/*
Delete removes a favorite. Owner-only, with no admin override.

Returns:
  - error: apperr.NotFound, apperr.Forbidden
*/
func (service *Service) Delete(context context.Context, actor authz.Identity, id int64) error {

	// 1. Resolve the target
	favorite, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Favorite ID does not exist")
		}
		return err
	}

	// 2. Authorize
	if err := authz.CanRemoveFavorite(actor, favorite.UserID); err != nil {
		return err
	}

	// 3. Mutate
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("favorite_service_delete_failed: %w", err)
	}

	service.logger.Info("favorite_deleted",
		slog.Int64("favorite_id", id),
		slog.Int64("user_id", actor.UserID),
	)

	return nil
}
