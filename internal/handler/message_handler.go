package handler

import (
	"io"
	"net/http"
	"time"

	"socialmedia/backend/internal/auth"
	"socialmedia/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

const streamKeepAlive = 30 * time.Second

// StreamHub registers live event streams.
type StreamHub interface {
	Subscribe(userID uint, client hub.Client)
	Unsubscribe(userID uint, client hub.Client)
}

type MessageHandler struct {
	messages MessageService
	hub      StreamHub
}

func NewMessageHandler(messages MessageService, h StreamHub) *MessageHandler {
	return &MessageHandler{messages: messages, hub: h}
}

// GetMessages godoc
// @Summary      Get received messages
// @Description  Lists every message sent to the current user, oldest first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages [get]
func (h *MessageHandler) GetMessages(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	messages, err := h.messages.Inbox(c.Request.Context(), me)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildMessages(messages))
}

// GetMessagesFromSender godoc
// @Summary      Get messages from a user
// @Description  Lists the messages the given user sent to the current user, oldest first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        senderUsername  path      string  true  "Sender username"
// @Success      200             {array}   MessageResponse
// @Failure      400             {object}  ErrorResponse "User not found"
// @Failure      401             {object}  ErrorResponse
// @Router       /messages/{senderUsername} [get]
func (h *MessageHandler) GetMessagesFromSender(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	messages, err := h.messages.FromSender(c.Request.Context(), me, c.Param("senderUsername"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildMessages(messages))
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Sends a direct message to the given user and notifies their open streams.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        recipientUsername  path      string            true  "Recipient username"
// @Param        input              body      SendMessageInput  true  "Message"
// @Success      201                {object}  MessageResponse
// @Failure      400                {object}  ValidationErrorResponse
// @Failure      401                {object}  ErrorResponse
// @Router       /messages/send/{recipientUsername} [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	message, err := h.messages.Send(c.Request.Context(), me, c.Param("recipientUsername"), input.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, buildMessage(*message))
}

// StreamMessages godoc
// @Summary      Stream incoming messages
// @Description  Opens a server-sent events stream that emits a "message" event for every message sent to the current user.
// @Tags         messages
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string "event stream"
// @Failure      401  {object}  ErrorResponse
// @Router       /messages/stream [get]
func (h *MessageHandler) StreamMessages(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	client := make(hub.Client, 16)
	h.hub.Subscribe(me.ID, client)
	defer h.hub.Unsubscribe(me.ID, client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case payload, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent(hub.EventMessage, string(payload))
			return true
		case <-ticker.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}
