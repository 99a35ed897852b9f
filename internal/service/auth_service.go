package service

import (
	"context"
	"errors"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	User  *models.User
	Token string
}

type AuthService struct {
	users  UserRepository
	tokens TokenMaker
	log    *zap.Logger
	cost   int
}

func NewAuthService(users UserRepository, tokens TokenMaker, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log, cost: bcryptCost}
}

// Register creates a user with the ROLE_USER role and issues a token.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*AuthResult, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperror.Internal(err, "failed to check user")
	}
	if exists {
		s.log.Warn("user already exists", zap.String("email", email), zap.String("username", username))
		return nil, apperror.Authentication("user already exists")
	}

	role, err := s.users.FindRoleByName(ctx, models.RoleUser)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load default role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperror.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		Roles:        []models.Role{*role},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("user already exists", zap.String("email", email), zap.String("username", username))
			return nil, apperror.Authentication("user already exists")
		}
		return nil, apperror.Internal(err, "failed to create user")
	}

	token, err := s.tokens.GenerateToken(user.Username)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate token")
	}

	s.log.Info("user registered", zap.Uint("userID", user.ID), zap.String("username", user.Username))
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks the password of the user identified by email or, when
// email is empty, by username.
func (s *AuthService) Login(ctx context.Context, email, username, password string) (*AuthResult, error) {
	if email == "" && username == "" {
		return nil, apperror.Validation("enter a username or an email")
	}

	identifier := email
	lookup := s.users.FindByEmail
	if email == "" {
		identifier = username
		lookup = s.users.FindByUsername
	}

	user, err := lookup(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("user %s not found", identifier)
	}
	if err != nil {
		return nil, apperror.Internal(err, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Info("wrong password", zap.String("identifier", identifier))
		return nil, apperror.InvalidCredentials("wrong password")
	}

	token, err := s.tokens.GenerateToken(user.Username)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate token")
	}

	s.log.Info("user logged in", zap.Uint("userID", user.ID), zap.String("identifier", identifier))
	return &AuthResult{User: user, Token: token}, nil
}
