package service

import (
	"context"

	"socialmedia/backend/internal/models"

	"go.uber.org/zap"
)

// Profile is everything shown on the acting user's own page. Usernames
// resolves the user ids referenced by the subscription edges.
type Profile struct {
	User             *models.User
	Posts            []models.Post
	Subscriptions    []models.Subscription
	Subscribers      []models.Subscription
	ReceivedMessages []models.Message
	Usernames        map[uint]string
}

type UserService struct {
	users    UserRepository
	subs     SubscriptionRepository
	posts    PostRepository
	messages MessageRepository
	log      *zap.Logger
}

func NewUserService(users UserRepository, subs SubscriptionRepository, posts PostRepository, messages MessageRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, subs: subs, posts: posts, messages: messages, log: log}
}

// FindByUsername resolves a user, returning NotFound when absent.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return findUserByUsername(ctx, s.users, username)
}

func (s *UserService) Me(ctx context.Context, actor *models.User) (*Profile, error) {
	posts, err := s.posts.FindByUser(ctx, actor.ID)
	if err != nil {
		return nil, asInternal(err, "failed to load posts")
	}
	subscriptions, err := s.subs.FindBySubscriber(ctx, actor.ID)
	if err != nil {
		return nil, asInternal(err, "failed to load subscriptions")
	}
	subscribers, err := s.subs.FindByUser(ctx, actor.ID)
	if err != nil {
		return nil, asInternal(err, "failed to load subscribers")
	}
	received, err := s.messages.FindByRecipient(ctx, actor.ID)
	if err != nil {
		return nil, asInternal(err, "failed to load messages")
	}

	ids := make([]uint, 0, len(subscriptions)+len(subscribers))
	for _, edge := range subscriptions {
		ids = append(ids, edge.UserID)
	}
	for _, edge := range subscribers {
		ids = append(ids, edge.SubscriberID)
	}
	related, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, asInternal(err, "failed to load related users")
	}

	usernames := map[uint]string{actor.ID: actor.Username}
	for _, u := range related {
		usernames[u.ID] = u.Username
	}

	return &Profile{
		User:             actor,
		Posts:            posts,
		Subscriptions:    subscriptions,
		Subscribers:      subscribers,
		ReceivedMessages: received,
		Usernames:        usernames,
	}, nil
}

// Friends returns the users whose subscription to the actor is accepted.
func (s *UserService) Friends(ctx context.Context, actor *models.User) ([]models.User, error) {
	edges, err := s.subs.FindAcceptedForUser(ctx, actor.ID)
	if err != nil {
		return nil, asInternal(err, "failed to load friends")
	}

	ids := make([]uint, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.SubscriberID)
	}
	friends, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, asInternal(err, "failed to load friends")
	}
	return friends, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, asInternal(err, "failed to load users")
	}
	return users, nil
}
