package repository

import (
	"context"
	"fmt"

	"socialmedia/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(message).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// FindByRecipient returns every message received by recipientID, oldest first.
func (r *MessageRepository) FindByRecipient(ctx context.Context, recipientID uint) ([]models.Message, error) {
	var messages []models.Message
	err := conn(ctx, r.db).
		Preload("Sender").Preload("Recipient").
		Where("recipient_id = ?", recipientID).
		Order("sent_at, id").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("find received messages: %w", err)
	}
	return messages, nil
}

// FindBetween returns the messages senderID sent to recipientID, oldest first.
func (r *MessageRepository) FindBetween(ctx context.Context, senderID, recipientID uint) ([]models.Message, error) {
	var messages []models.Message
	err := conn(ctx, r.db).
		Preload("Sender").Preload("Recipient").
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Order("sent_at, id").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	return messages, nil
}
