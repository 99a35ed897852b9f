package service

import (
	"context"
	"errors"
	"fmt"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"

	"go.uber.org/zap"
)

// SelfSubscriptionStatus is returned when a user targets themselves.
const SelfSubscriptionStatus = "You can't subscribe yourself"

// SubscriptionService drives the friendship state machine between two
// users: stranger, pending (one edge, not accepted) and mutual (both
// edges accepted).
type SubscriptionService struct {
	tx    Transactor
	users UserRepository
	subs  SubscriptionRepository
	log   *zap.Logger
}

func NewSubscriptionService(tx Transactor, users UserRepository, subs SubscriptionRepository, log *zap.Logger) *SubscriptionService {
	return &SubscriptionService{tx: tx, users: users, subs: subs, log: log}
}

// ChangeSubscription toggles the actor's subscription to targetUsername.
// An existing subscription is canceled, demoting a mutual friendship to a
// pending request from the target. Without one, the actor either
// reciprocates a pending request from the target or opens a new request.
func (s *SubscriptionService) ChangeSubscription(ctx context.Context, actor *models.User, targetUsername string) (string, error) {
	target, err := findUserByUsername(ctx, s.users, targetUsername)
	if err != nil {
		return "", err
	}
	if target.ID == actor.ID {
		return SelfSubscriptionStatus, nil
	}

	var status string
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.subs.LockPair(ctx, actor.ID, target.ID); err != nil {
			return err
		}

		forward, err := s.findEdge(ctx, target.ID, actor.ID)
		if err != nil {
			return err
		}
		reverse, err := s.findEdge(ctx, actor.ID, target.ID)
		if err != nil {
			return err
		}

		switch {
		case forward != nil:
			if err := s.subs.Delete(ctx, forward); err != nil {
				return err
			}
			if reverse != nil && reverse.Accepted {
				reverse.Accepted = false
				if err := s.subs.Save(ctx, reverse); err != nil {
					return err
				}
			}
			status = fmt.Sprintf("subscription on %s canceled", target.Username)

		case reverse != nil:
			reverse.Accepted = true
			if err := s.subs.Save(ctx, reverse); err != nil {
				return err
			}
			if err := s.subs.Save(ctx, &models.Subscription{UserID: target.ID, SubscriberID: actor.ID, Accepted: true}); err != nil {
				return err
			}
			status = fmt.Sprintf("subscription of %s accepted", target.Username)

		default:
			if err := s.subs.Save(ctx, &models.Subscription{UserID: target.ID, SubscriberID: actor.ID}); err != nil {
				return err
			}
			status = fmt.Sprintf("you subscribe %s now", target.Username)
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to change subscription",
			zap.Uint("actorID", actor.ID), zap.Uint("targetID", target.ID), zap.Error(err))
		return "", asInternal(err, "failed to change subscription")
	}

	s.log.Info("subscription changed",
		zap.Uint("actorID", actor.ID), zap.Uint("targetID", target.ID), zap.String("status", status))
	return status, nil
}

// AcceptSubscription accepts the pending request subscriberUsername sent
// to the actor and subscribes the actor back.
func (s *SubscriptionService) AcceptSubscription(ctx context.Context, actor *models.User, subscriberUsername string) (string, error) {
	subscriber, err := findUserByUsername(ctx, s.users, subscriberUsername)
	if err != nil {
		return "", err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.subs.LockPair(ctx, actor.ID, subscriber.ID); err != nil {
			return err
		}

		pending, err := s.findEdge(ctx, actor.ID, subscriber.ID)
		if err != nil {
			return err
		}
		if pending == nil {
			return apperror.NotFound("subscription from %s not found", subscriber.Username)
		}
		pending.Accepted = true
		if err := s.subs.Save(ctx, pending); err != nil {
			return err
		}

		back, err := s.findEdge(ctx, subscriber.ID, actor.ID)
		if err != nil {
			return err
		}
		if back == nil {
			back = &models.Subscription{UserID: subscriber.ID, SubscriberID: actor.ID}
		}
		back.Accepted = true
		return s.subs.Save(ctx, back)
	})
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return "", err
		}
		s.log.Error("failed to accept subscription",
			zap.Uint("actorID", actor.ID), zap.Uint("subscriberID", subscriber.ID), zap.Error(err))
		return "", asInternal(err, "failed to accept subscription")
	}

	s.log.Info("subscription accepted", zap.Uint("actorID", actor.ID), zap.Uint("subscriberID", subscriber.ID))
	return fmt.Sprintf("accepted subscription for %s", subscriber.Username), nil
}

// findEdge returns nil without error when the edge does not exist.
func (s *SubscriptionService) findEdge(ctx context.Context, userID, subscriberID uint) (*models.Subscription, error) {
	edge, err := s.subs.FindEdge(ctx, userID, subscriberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return edge, err
}
