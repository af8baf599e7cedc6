package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/repository"
	"github.com/yeremiapane/guestlist-app/utils"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
}

type AuthService struct {
	Users  repository.UserRepository
	Tokens *utils.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return "", nil, fromValidator(err)
	}

	user, err := s.Users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	utils.InfoLogger.Infof("Login successful for user: %s, role: %s", user.Email, user.Role)
	return token, user, nil
}

func (s *AuthService) Logout(token string) {
	s.Tokens.Revoke(token)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.Users.FindByID(ctx, userID)
}

// Register creates a staff account. Role defaults to staff.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if err := validate.Struct(in); err != nil {
		return nil, fromValidator(err)
	}
	if in.Role == "" {
		in.Role = models.RoleStaff
	}
	if _, err := s.Users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Role:     in.Role,
	}
	err = s.Users.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Infof("New user registered: %s (role=%s)", user.Email, user.Role)
	return user, nil
}
