package auth

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"staffpay/internal/domain/apperr"
)

type Service struct {
	repo     Repository
	secret   string
	tokenTTL time.Duration
	Now      func() time.Time
}

func NewService(repo Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, secret: secret, tokenTTL: tokenTTL, Now: time.Now}
}

func (s *Service) ValidateCredentials(ctx context.Context, username, password string) bool {
	_, err := s.AuthenticateUser(ctx, username, password)
	return err == nil
}

// AuthenticateUser returns ErrInvalidCredentials for unknown users and wrong
// passwords alike.
func (s *Service) AuthenticateUser(ctx context.Context, username, password string) (User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) VerifyUserAuthorization(ctx context.Context, username, requiredRole string) bool {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return false
	}
	return user.Role == requiredRole
}

func (s *Service) ProcessLogin(ctx context.Context, username, password string) (User, error) {
	if strings.TrimSpace(username) == "" {
		return User{}, ErrUsernameRequired
	}
	if strings.TrimSpace(password) == "" {
		return User{}, ErrPasswordRequired
	}
	return s.AuthenticateUser(ctx, username, password)
}

// Login authenticates and issues a bearer token for the user.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	user, err := s.ProcessLogin(ctx, username, password)
	if err != nil {
		slog.Info("login failed", "username", username, "err", err)
		return "", User{}, err
	}
	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, Username: user.Username, Role: user.Role}, s.tokenTTL)
	if err != nil {
		return "", User{}, err
	}
	slog.Info("login succeeded", "username", user.Username)
	return token, user, nil
}

// EnsureUser creates the user unless the username is already taken.
func (s *Service) EnsureUser(ctx context.Context, username, password, role string) (User, error) {
	if strings.TrimSpace(username) == "" {
		return User{}, ErrUsernameRequired
	}
	if strings.TrimSpace(password) == "" {
		return User{}, ErrPasswordRequired
	}
	if !slices.Contains(Roles, role) {
		return User{}, ErrUnknownRole
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !apperr.IsNotFound(err) {
		return User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	return s.repo.Save(ctx, User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.Now().UTC(),
	})
}

// ParseToken validates a bearer token issued by Login.
func (s *Service) ParseToken(token string) (UserContext, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return UserContext{}, err
	}
	return UserContext{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}
