package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/hub"
	"socialmedia/backend/internal/models"

	"go.uber.org/zap"
)

const MaxMessageLength = 1000

// TimeLayout formats timestamps in API payloads.
const TimeLayout = "2006-01-02 15:04:05"

// MessageEvent is the payload of a live "message" event.
type MessageEvent struct {
	ID                uint   `json:"id"`
	Text              string `json:"text"`
	SendAt            string `json:"sendAt"`
	SenderUsername    string `json:"senderUsername"`
	RecipientUsername string `json:"recipientUsername"`
}

type MessageService struct {
	users    UserRepository
	messages MessageRepository
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time
}

func NewMessageService(users UserRepository, messages MessageRepository, events EventPublisher, log *zap.Logger) *MessageService {
	return &MessageService{users: users, messages: messages, events: events, log: log, now: time.Now}
}

// Inbox returns every message the actor received.
func (s *MessageService) Inbox(ctx context.Context, actor *models.User) ([]models.Message, error) {
	messages, err := s.messages.FindByRecipient(ctx, actor.ID)
	if err != nil {
		return nil, asInternal(err, "failed to load messages")
	}
	return messages, nil
}

// FromSender returns the messages senderUsername sent to the actor.
func (s *MessageService) FromSender(ctx context.Context, actor *models.User, senderUsername string) ([]models.Message, error) {
	sender, err := findUserByUsername(ctx, s.users, senderUsername)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.FindBetween(ctx, sender.ID, actor.ID)
	if err != nil {
		return nil, asInternal(err, "failed to load messages")
	}
	return messages, nil
}

// Send stores a message from the actor and notifies the recipient's open
// streams.
func (s *MessageService) Send(ctx context.Context, actor *models.User, recipientUsername, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.Validation("message text must not be blank")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, apperror.Validation("message text must be at most %d characters", MaxMessageLength)
	}

	recipient, err := findUserByUsername(ctx, s.users, recipientUsername)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:    actor.ID,
		RecipientID: recipient.ID,
		Text:        text,
		SentAt:      s.now().UTC(),
		Sender:      actor,
		Recipient:   recipient,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, asInternal(err, "failed to send message")
	}

	s.events.Publish(recipient.ID, hub.Event{
		Type: hub.EventMessage,
		Payload: MessageEvent{
			ID:                message.ID,
			Text:              message.Text,
			SendAt:            message.SentAt.Format(TimeLayout),
			SenderUsername:    actor.Username,
			RecipientUsername: recipient.Username,
		},
	})

	s.log.Info("message sent", zap.Uint("messageID", message.ID), zap.Uint("senderID", actor.ID), zap.Uint("recipientID", recipient.ID))
	return message, nil
}
