package service

import (
	"context"
	"errors"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"
)

// asInternal passes classified errors through and wraps everything else.
func asInternal(err error, message string) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err, message)
}

func findUserByUsername(ctx context.Context, users UserRepository, username string) (*models.User, error) {
	user, err := users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("user %s not found", username)
	}
	if err != nil {
		return nil, apperror.Internal(err, "failed to load user")
	}
	return user, nil
}
