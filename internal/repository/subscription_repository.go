package repository

import (
	"context"
	"fmt"

	"socialmedia/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository stores directed subscription edges.
type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// LockPair takes a transaction-scoped advisory lock on the unordered pair
// {a, b}, serializing concurrent changes between the same two users even
// when neither edge row exists yet. It must run inside a transaction.
func (r *SubscriptionRepository) LockPair(ctx context.Context, a, b uint) error {
	if !inTransaction(ctx) {
		return fmt.Errorf("lock pair: no transaction in context")
	}
	if err := conn(ctx, r.db).Exec("SELECT pg_advisory_xact_lock(?)", pairLockKey(a, b)).Error; err != nil {
		return fmt.Errorf("lock pair: %w", err)
	}
	return nil
}

// pairLockKey packs the unordered pair into one bigint lock key: the smaller
// id in the high 32 bits, the larger in the low 32. Pairs of ids below 2^32
// never share a key; larger ids only alias into extra contention.
func pairLockKey(a, b uint) int64 {
	if a > b {
		a, b = b, a
	}
	return int64(uint64(uint32(a))<<32 | uint64(uint32(b)))
}

// FindEdge returns the edge where subscriberID follows userID. Inside a
// transaction the row is locked for update.
func (r *SubscriptionRepository) FindEdge(ctx context.Context, userID, subscriberID uint) (*models.Subscription, error) {
	q := conn(ctx, r.db)
	if inTransaction(ctx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var edge models.Subscription
	err := q.Where("user_id = ? AND subscriber_id = ?", userID, subscriberID).First(&edge).Error
	if err != nil {
		return nil, translate(err)
	}
	return &edge, nil
}

// Save inserts the edge or updates its accepted flag.
func (r *SubscriptionRepository) Save(ctx context.Context, edge *models.Subscription) error {
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "subscriber_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"accepted", "updated_at"}),
	}).Create(edge).Error
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, edge *models.Subscription) error {
	err := conn(ctx, r.db).
		Where("user_id = ? AND subscriber_id = ?", edge.UserID, edge.SubscriberID).
		Delete(&models.Subscription{}).Error
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// FindAcceptedForUser returns the accepted edges pointing at userID.
func (r *SubscriptionRepository) FindAcceptedForUser(ctx context.Context, userID uint) ([]models.Subscription, error) {
	var edges []models.Subscription
	err := conn(ctx, r.db).
		Where("user_id = ? AND accepted = ?", userID, true).
		Order("subscriber_id").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("find accepted subscriptions: %w", err)
	}
	return edges, nil
}

// FindByUser returns every edge pointing at userID (its subscribers).
func (r *SubscriptionRepository) FindByUser(ctx context.Context, userID uint) ([]models.Subscription, error) {
	var edges []models.Subscription
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("subscriber_id").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("find subscribers: %w", err)
	}
	return edges, nil
}

// FindBySubscriber returns every edge created by subscriberID.
func (r *SubscriptionRepository) FindBySubscriber(ctx context.Context, subscriberID uint) ([]models.Subscription, error) {
	var edges []models.Subscription
	if err := conn(ctx, r.db).Where("subscriber_id = ?", subscriberID).Order("user_id").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("find subscriptions: %w", err)
	}
	return edges, nil
}
