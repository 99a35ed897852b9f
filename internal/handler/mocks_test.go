package handler

import (
	"context"

	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type authServiceMock struct{ mock.Mock }

func (m *authServiceMock) Register(ctx context.Context, email, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, username, password)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, email, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, username, password)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

type userServiceMock struct{ mock.Mock }

func (m *userServiceMock) Me(ctx context.Context, actor *models.User) (*service.Profile, error) {
	args := m.Called(ctx, actor)
	res, _ := args.Get(0).(*service.Profile)
	return res, args.Error(1)
}

func (m *userServiceMock) Friends(ctx context.Context, actor *models.User) ([]models.User, error) {
	args := m.Called(ctx, actor)
	res, _ := args.Get(0).([]models.User)
	return res, args.Error(1)
}

func (m *userServiceMock) FindAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.User)
	return res, args.Error(1)
}

type subscriptionServiceMock struct{ mock.Mock }

func (m *subscriptionServiceMock) ChangeSubscription(ctx context.Context, actor *models.User, target string) (string, error) {
	args := m.Called(ctx, actor, target)
	return args.String(0), args.Error(1)
}

func (m *subscriptionServiceMock) AcceptSubscription(ctx context.Context, actor *models.User, subscriber string) (string, error) {
	args := m.Called(ctx, actor, subscriber)
	return args.String(0), args.Error(1)
}

type postServiceMock struct{ mock.Mock }

func (m *postServiceMock) List(ctx context.Context, q service.PostQuery) (*service.PostPage, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*service.PostPage)
	return res, args.Error(1)
}

func (m *postServiceMock) FindByID(ctx context.Context, id uint) (*models.Post, []models.PostImage, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	images, _ := args.Get(1).([]models.PostImage)
	return post, images, args.Error(2)
}

func (m *postServiceMock) Create(ctx context.Context, actor *models.User, title, text string) (*models.Post, error) {
	args := m.Called(ctx, actor, title, text)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *postServiceMock) Update(ctx context.Context, actor *models.User, id uint, update service.PostUpdate) (*models.Post, []models.PostImage, error) {
	args := m.Called(ctx, actor, id, update)
	post, _ := args.Get(0).(*models.Post)
	images, _ := args.Get(1).([]models.PostImage)
	return post, images, args.Error(2)
}

func (m *postServiceMock) Delete(ctx context.Context, actor *models.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

type postImageServiceMock struct{ mock.Mock }

func (m *postImageServiceMock) List(ctx context.Context, postID uint) ([]models.PostImage, error) {
	args := m.Called(ctx, postID)
	res, _ := args.Get(0).([]models.PostImage)
	return res, args.Error(1)
}

func (m *postImageServiceMock) Upload(ctx context.Context, actor *models.User, postID uint, file service.ImageUpload) (*models.PostImage, error) {
	args := m.Called(ctx, actor, postID, file)
	res, _ := args.Get(0).(*models.PostImage)
	return res, args.Error(1)
}

func (m *postImageServiceMock) Delete(ctx context.Context, actor *models.User, postID, imageID uint) (string, error) {
	args := m.Called(ctx, actor, postID, imageID)
	return args.String(0), args.Error(1)
}

type messageServiceMock struct{ mock.Mock }

func (m *messageServiceMock) Inbox(ctx context.Context, actor *models.User) ([]models.Message, error) {
	args := m.Called(ctx, actor)
	res, _ := args.Get(0).([]models.Message)
	return res, args.Error(1)
}

func (m *messageServiceMock) FromSender(ctx context.Context, actor *models.User, sender string) ([]models.Message, error) {
	args := m.Called(ctx, actor, sender)
	res, _ := args.Get(0).([]models.Message)
	return res, args.Error(1)
}

func (m *messageServiceMock) Send(ctx context.Context, actor *models.User, recipient, text string) (*models.Message, error) {
	args := m.Called(ctx, actor, recipient, text)
	res, _ := args.Get(0).(*models.Message)
	return res, args.Error(1)
}
