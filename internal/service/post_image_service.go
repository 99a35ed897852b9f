package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"
	"socialmedia/backend/internal/storage"

	"go.uber.org/zap"
)

// ImageUpload is an uploaded file as received from the client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type PostImageService struct {
	tx      Transactor
	posts   PostRepository
	images  PostImageRepository
	storage storage.Provider
	log     *zap.Logger
}

func NewPostImageService(tx Transactor, posts PostRepository, images PostImageRepository, store storage.Provider, log *zap.Logger) *PostImageService {
	return &PostImageService{tx: tx, posts: posts, images: images, storage: store, log: log}
}

// ImageKey derives the storage key of an uploaded file. The name is split
// on its first dot; the part before it is base64url encoded.
func ImageKey(postID uint, filename string) (string, error) {
	name, ext, ok := strings.Cut(filename, ".")
	if !ok || name == "" || ext == "" || strings.ContainsAny(ext, `/\`) {
		return "", apperror.Validation("invalid image filename %q", filename)
	}
	encoded := base64.URLEncoding.EncodeToString([]byte(name))
	return fmt.Sprintf("postimages/%d/%s.%s", postID, encoded, ext), nil
}

func (s *PostImageService) List(ctx context.Context, postID uint) ([]models.PostImage, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	images, err := s.images.FindByPost(ctx, postID)
	if err != nil {
		return nil, asInternal(err, "failed to load post images")
	}
	return images, nil
}

// Upload stores the file and records it. The row and the file are written
// together: if the file cannot be written the row is rolled back, and if
// the commit fails the written file is removed.
func (s *PostImageService) Upload(ctx context.Context, actor *models.User, postID uint, file ImageUpload) (*models.PostImage, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID {
		return nil, apperror.Forbidden("someone else's post")
	}

	key, err := ImageKey(postID, file.Filename)
	if err != nil {
		return nil, err
	}

	image := &models.PostImage{PostID: postID, Filename: file.Filename, StorageKey: key}
	var written bool
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.images.Create(ctx, image); err != nil {
			return err
		}
		if err := s.storage.Save(ctx, key, file.Content, file.Size, file.ContentType); err != nil {
			return apperror.Storage(err, "failed to store image %s", file.Filename)
		}
		written = true
		return nil
	})
	if err != nil {
		if written {
			if derr := s.storage.Delete(ctx, key); derr != nil {
				s.log.Warn("failed to remove orphaned image file", zap.String("key", key), zap.Error(derr))
			}
		}
		s.log.Error("failed to upload image", zap.Uint("postID", postID), zap.String("filename", file.Filename), zap.Error(err))
		return nil, asInternal(err, "failed to save image")
	}

	s.log.Info("image uploaded", zap.Uint("postID", postID), zap.Uint("imageID", image.ID), zap.String("key", key))
	return image, nil
}

// Delete removes an image of one of the actor's posts.
func (s *PostImageService) Delete(ctx context.Context, actor *models.User, postID, imageID uint) (string, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return "", err
	}
	if post.UserID != actor.ID {
		return "", apperror.Forbidden("someone else's post")
	}

	image, err := s.images.FindByID(ctx, imageID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && image.PostID != postID) {
		return "", apperror.NotFound("image %d not found", imageID)
	}
	if err != nil {
		return "", apperror.Internal(err, "failed to load image")
	}

	if err := s.images.Delete(ctx, image.ID); err != nil {
		return "", asInternal(err, "failed to delete image")
	}
	if err := s.storage.Delete(ctx, image.StorageKey); err != nil {
		s.log.Warn("failed to remove image file", zap.String("key", image.StorageKey), zap.Error(err))
	}

	s.log.Info("image deleted", zap.Uint("postID", postID), zap.Uint("imageID", imageID))
	return "deletion successful", nil
}

func (s *PostImageService) findPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("post not found")
	}
	if err != nil {
		return nil, apperror.Internal(err, "failed to load post")
	}
	return post, nil
}
