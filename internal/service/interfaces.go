// Package service holds the business rules of the application. Services
// receive the acting user explicitly and return apperror kinds.
package service

import (
	"context"

	"socialmedia/backend/internal/hub"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"
)

// Transactor opens a transaction bound to the returned context.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
}

// SubscriptionRepository stores directed edges. FindEdge returns
// repository.ErrNotFound when the edge is absent.
type SubscriptionRepository interface {
	LockPair(ctx context.Context, a, b uint) error
	FindEdge(ctx context.Context, userID, subscriberID uint) (*models.Subscription, error)
	Save(ctx context.Context, edge *models.Subscription) error
	Delete(ctx context.Context, edge *models.Subscription) error
	FindAcceptedForUser(ctx context.Context, userID uint) ([]models.Subscription, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Subscription, error)
	FindBySubscriber(ctx context.Context, subscriberID uint) ([]models.Subscription, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	FindPage(ctx context.Context, page, size int, sortField string, desc bool) (*repository.Page[models.Post], error)
	FindByUser(ctx context.Context, userID uint) ([]models.Post, error)
}

type PostImageRepository interface {
	Create(ctx context.Context, image *models.PostImage) error
	FindByID(ctx context.Context, id uint) (*models.PostImage, error)
	FindByPost(ctx context.Context, postID uint) ([]models.PostImage, error)
	FindByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.PostImage, error)
	Delete(ctx context.Context, id uint) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByRecipient(ctx context.Context, recipientID uint) ([]models.Message, error)
	FindBetween(ctx context.Context, senderID, recipientID uint) ([]models.Message, error)
}

// TokenMaker issues access tokens for a username.
type TokenMaker interface {
	GenerateToken(username string) (string, error)
}

// EventPublisher delivers live events to a user's open streams.
type EventPublisher interface {
	Publish(userID uint, event hub.Event)
}
