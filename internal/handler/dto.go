package handler

import (
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/service"
)

// region --- Requests ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Username string `json:"username" binding:"required,min=5,max=40" example:"alice"`
	Password string `json:"password" binding:"required,min=4" example:"secret"`
}

// LoginInput defines the structure for user login. Either email or
// username identifies the user; email wins when both are given.
type LoginInput struct {
	Email    string `json:"email" binding:"omitempty,email" example:"alice@example.com"`
	Username string `json:"username" binding:"omitempty,min=5,max=40" example:"alice"`
	Password string `json:"password" binding:"required,min=4" example:"secret"`
}

// PostCreateInput defines the structure for creating a post.
type PostCreateInput struct {
	Title string `json:"title" binding:"required,min=10,max=100" example:"My first post"`
	Text  string `json:"text" binding:"required,min=10,max=1000" example:"Hello everyone, this is my first post."`
}

// PostUpdateInput defines the structure for a partial post update.
type PostUpdateInput struct {
	Title *string `json:"title" binding:"omitempty,min=10,max=100" example:"An edited title"`
	Text  *string `json:"text" binding:"omitempty,min=10,max=1000" example:"Some edited text for the post."`
}

// SendMessageInput defines the structure for sending a message.
type SendMessageInput struct {
	Text string `json:"text" binding:"required,notblank,max=1000" example:"Hi there!"`
}

// endregion

// region --- Responses ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// Violation describes one invalid request field.
type Violation struct {
	FieldName string `json:"fieldName" example:"email"`
	Message   string `json:"message" example:"must be a valid email"`
}

// ValidationErrorResponse lists the invalid fields of a request.
type ValidationErrorResponse struct {
	Violations []Violation `json:"violations"`
}

// AuthResponse is returned after register and login.
type AuthResponse struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email,omitempty" example:"alice@example.com"`
	Username string `json:"username,omitempty" example:"alice"`
	Token    string `json:"token"`
}

// SubscriptionStatusResponse carries the outcome of a subscription change.
type SubscriptionStatusResponse struct {
	SubscriptionStatus string `json:"subscriptionStatus" example:"you subscribe bob now"`
}

// SubscriptionResponse describes one subscription edge.
type SubscriptionResponse struct {
	Username           string `json:"username" example:"bob"`
	SubscriberUsername string `json:"subscriberUsername" example:"alice"`
	Accepted           bool   `json:"accepted"`
}

// RoleResponse describes a role.
type RoleResponse struct {
	Name string `json:"name" example:"ROLE_USER"`
}

// AuthorResponse is the reduced user shown as a post author or friend.
type AuthorResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

// PostImageResponse describes an image attached to a post.
type PostImageResponse struct {
	ID       uint   `json:"id" example:"1"`
	Filename string `json:"filename" example:"cat.png"`
}

// PostResponse describes a post.
type PostResponse struct {
	ID        uint                `json:"id" example:"1"`
	Title     string              `json:"title" example:"My first post"`
	Text      string              `json:"text" example:"Hello everyone, this is my first post."`
	Author    *AuthorResponse     `json:"author,omitempty"`
	CreatedAt string              `json:"createdAt" example:"2024-01-01 12:00:00"`
	UpdatedAt string              `json:"updatedAt" example:"2024-01-01 12:00:00"`
	Images    []PostImageResponse `json:"images"`
}

// MessageResponse describes a direct message.
type MessageResponse struct {
	ID                uint   `json:"id" example:"1"`
	Text              string `json:"text" example:"Hi there!"`
	SendAt            string `json:"sendAt" example:"2024-01-01 12:00:00"`
	SenderUsername    string `json:"senderUsername" example:"alice"`
	RecipientUsername string `json:"recipientUsername" example:"bob"`
}

// ProfileResponse is the authenticated user's own profile.
type ProfileResponse struct {
	ID            uint                   `json:"id" example:"1"`
	Username      string                 `json:"username" example:"alice"`
	Email         string                 `json:"email" example:"alice@example.com"`
	Roles         []RoleResponse         `json:"roles"`
	Posts         []PostResponse         `json:"posts"`
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Subscribers   []SubscriptionResponse `json:"subscribers"`
	Messages      []MessageResponse      `json:"messages"`
}

// AdminUserResponse is a user as listed to administrators.
type AdminUserResponse struct {
	ID       uint           `json:"id" example:"1"`
	Username string         `json:"username" example:"alice"`
	Email    string         `json:"email" example:"alice@example.com"`
	Roles    []RoleResponse `json:"roles"`
}

// endregion

// region --- Mapping ---

func buildAuthor(u *models.User) *AuthorResponse {
	if u == nil {
		return nil
	}
	return &AuthorResponse{ID: u.ID, Username: u.Username}
}

func buildRoles(roles []models.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleResponse{Name: r.Name})
	}
	return out
}

func buildImages(images []models.PostImage) []PostImageResponse {
	out := make([]PostImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, PostImageResponse{ID: img.ID, Filename: img.Filename})
	}
	return out
}

func buildPost(p models.Post, images []models.PostImage) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Text:      p.Text,
		Author:    buildAuthor(p.Owner),
		CreatedAt: p.CreatedAt.Format(service.TimeLayout),
		UpdatedAt: p.UpdatedAt.Format(service.TimeLayout),
		Images:    buildImages(images),
	}
}

func buildMessage(m models.Message) MessageResponse {
	resp := MessageResponse{
		ID:     m.ID,
		Text:   m.Text,
		SendAt: m.SentAt.Format(service.TimeLayout),
	}
	if m.Sender != nil {
		resp.SenderUsername = m.Sender.Username
	}
	if m.Recipient != nil {
		resp.RecipientUsername = m.Recipient.Username
	}
	return resp
}

func buildMessages(messages []models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, buildMessage(m))
	}
	return out
}

func buildSubscriptions(edges []models.Subscription, usernames map[uint]string) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, SubscriptionResponse{
			Username:           usernames[e.UserID],
			SubscriberUsername: usernames[e.SubscriberID],
			Accepted:           e.Accepted,
		})
	}
	return out
}

func buildProfile(p *service.Profile) ProfileResponse {
	posts := make([]PostResponse, 0, len(p.Posts))
	for _, post := range p.Posts {
		post.Owner = p.User
		posts = append(posts, buildPost(post, nil))
	}
	return ProfileResponse{
		ID:            p.User.ID,
		Username:      p.User.Username,
		Email:         p.User.Email,
		Roles:         buildRoles(p.User.Roles),
		Posts:         posts,
		Subscriptions: buildSubscriptions(p.Subscriptions, p.Usernames),
		Subscribers:   buildSubscriptions(p.Subscribers, p.Usernames),
		Messages:      buildMessages(p.ReceivedMessages),
	}
}

// endregion
