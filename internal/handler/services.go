package handler

import (
	"context"

	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/service"
)

// The interfaces below are satisfied by the services in internal/service.

type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, username, password string) (*service.AuthResult, error)
}

type UserService interface {
	Me(ctx context.Context, actor *models.User) (*service.Profile, error)
	Friends(ctx context.Context, actor *models.User) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

type SubscriptionService interface {
	ChangeSubscription(ctx context.Context, actor *models.User, targetUsername string) (string, error)
	AcceptSubscription(ctx context.Context, actor *models.User, subscriberUsername string) (string, error)
}

type PostService interface {
	List(ctx context.Context, q service.PostQuery) (*service.PostPage, error)
	FindByID(ctx context.Context, id uint) (*models.Post, []models.PostImage, error)
	Create(ctx context.Context, actor *models.User, title, text string) (*models.Post, error)
	Update(ctx context.Context, actor *models.User, id uint, update service.PostUpdate) (*models.Post, []models.PostImage, error)
	Delete(ctx context.Context, actor *models.User, id uint) error
}

type PostImageService interface {
	List(ctx context.Context, postID uint) ([]models.PostImage, error)
	Upload(ctx context.Context, actor *models.User, postID uint, file service.ImageUpload) (*models.PostImage, error)
	Delete(ctx context.Context, actor *models.User, postID, imageID uint) (string, error)
}

type MessageService interface {
	Inbox(ctx context.Context, actor *models.User) ([]models.Message, error)
	FromSender(ctx context.Context, actor *models.User, senderUsername string) ([]models.Message, error)
	Send(ctx context.Context, actor *models.User, recipientUsername, text string) (*models.Message, error)
}
