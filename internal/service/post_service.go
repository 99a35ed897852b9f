package service

import (
	"context"
	"errors"
	"strings"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"
	"socialmedia/backend/internal/storage"

	"go.uber.org/zap"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// postSortColumns maps accepted sort fields to columns.
var postSortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"text":       "text",
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
}

// PostQuery selects one page of posts. Page is zero-based.
type PostQuery struct {
	Page      int
	Size      int
	SortField string
	SortOrder string
}

// PostPage is a page of posts with their images grouped by post id.
type PostPage struct {
	*repository.Page[models.Post]
	Images map[uint][]models.PostImage
}

// PostUpdate carries the fields of a partial update. Nil fields are left
// untouched.
type PostUpdate struct {
	Title *string
	Text  *string
}

type PostService struct {
	tx      Transactor
	posts   PostRepository
	images  PostImageRepository
	storage storage.Provider
	log     *zap.Logger
}

func NewPostService(tx Transactor, posts PostRepository, images PostImageRepository, store storage.Provider, log *zap.Logger) *PostService {
	return &PostService{tx: tx, posts: posts, images: images, storage: store, log: log}
}

func (s *PostService) List(ctx context.Context, q PostQuery) (*PostPage, error) {
	if q.Page < 0 {
		return nil, apperror.Validation("page must not be negative")
	}
	if q.Size == 0 {
		q.Size = DefaultPageSize
	}
	if q.Size < 1 || q.Size > MaxPageSize {
		return nil, apperror.Validation("size must be between 1 and %d", MaxPageSize)
	}
	if q.SortField == "" {
		q.SortField = "id"
	}
	column, ok := postSortColumns[q.SortField]
	if !ok {
		return nil, apperror.Validation("cannot sort by %s", q.SortField)
	}
	var desc bool
	switch strings.ToUpper(q.SortOrder) {
	case "", "ASC":
	case "DESC":
		desc = true
	default:
		return nil, apperror.Validation("sort order must be ASC or DESC")
	}

	page, err := s.posts.FindPage(ctx, q.Page, q.Size, column, desc)
	if err != nil {
		return nil, asInternal(err, "failed to load posts")
	}

	ids := make([]uint, 0, len(page.Items))
	for _, p := range page.Items {
		ids = append(ids, p.ID)
	}
	images, err := s.images.FindByPosts(ctx, ids)
	if err != nil {
		return nil, asInternal(err, "failed to load post images")
	}
	return &PostPage{Page: page, Images: images}, nil
}

// FindByID returns the post and its images.
func (s *PostService) FindByID(ctx context.Context, id uint) (*models.Post, []models.PostImage, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	images, err := s.images.FindByPost(ctx, id)
	if err != nil {
		return nil, nil, asInternal(err, "failed to load post images")
	}
	return post, images, nil
}

func (s *PostService) Create(ctx context.Context, actor *models.User, title, text string) (*models.Post, error) {
	post := &models.Post{UserID: actor.ID, Title: title, Text: text, Owner: actor}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, asInternal(err, "failed to create post")
	}
	s.log.Info("post created", zap.Uint("postID", post.ID), zap.Uint("userID", actor.ID))
	return post, nil
}

func (s *PostService) Update(ctx context.Context, actor *models.User, id uint, update PostUpdate) (*models.Post, []models.PostImage, error) {
	post, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Text != nil {
		post.Text = *update.Text
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, nil, asInternal(err, "failed to update post")
	}

	images, err := s.images.FindByPost(ctx, id)
	if err != nil {
		return nil, nil, asInternal(err, "failed to load post images")
	}
	s.log.Info("post updated", zap.Uint("postID", post.ID), zap.Uint("userID", actor.ID))
	return post, images, nil
}

// Delete removes the post with its images. Image files are removed after
// the rows are gone; a file that cannot be removed is only logged.
func (s *PostService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.ownedPost(ctx, actor, id); err != nil {
		return err
	}

	var images []models.PostImage
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if images, err = s.images.FindByPost(ctx, id); err != nil {
			return err
		}
		for _, image := range images {
			if err := s.images.Delete(ctx, image.ID); err != nil {
				return err
			}
		}
		return s.posts.Delete(ctx, id)
	})
	if err != nil {
		return asInternal(err, "failed to delete post")
	}

	for _, image := range images {
		if err := s.storage.Delete(ctx, image.StorageKey); err != nil {
			s.log.Warn("failed to remove image file", zap.String("key", image.StorageKey), zap.Error(err))
		}
	}
	s.log.Info("post deleted", zap.Uint("postID", id), zap.Uint("userID", actor.ID), zap.Int("images", len(images)))
	return nil
}

func (s *PostService) findPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("post not found")
	}
	if err != nil {
		return nil, apperror.Internal(err, "failed to load post")
	}
	return post, nil
}

func (s *PostService) ownedPost(ctx context.Context, actor *models.User, id uint) (*models.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID {
		return nil, apperror.Forbidden("someone else's post")
	}
	return post, nil
}
