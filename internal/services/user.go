package services

import (
	"context"
	"strings"
	"time"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/auth"
	"github.com/digibank/backend/internal/models"
	repo "github.com/digibank/backend/internal/repository"
)

type UserService struct {
	users    repo.Users
	accounts repo.Accounts
	tm       *auth.TokenManager
	auditor
}

func NewUserService(users repo.Users, accounts repo.Accounts, tm *auth.TokenManager, logs repo.AuditLogs) *UserService {
	return &UserService{users: users, accounts: accounts, tm: tm, auditor: auditor{logs}}
}

// Register creates the user and their primary checking account.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Role:     models.RoleUser,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, apperr.Validation(err.Error())
	}
	if len(password) < 8 {
		return models.User{}, apperr.Validation("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash

	u, err = s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}

	_, err = s.accounts.Create(ctx, models.Account{
		OwnerID:   u.ID,
		Type:      models.AccountChecking,
		Currency:  "USD",
		IsPrimary: true,
	})
	if err != nil {
		return models.User{}, err
	}

	s.record(ctx, "user", u.ID, u.ID, "registered", nil)
	return u, nil
}

type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    time.Duration `json:"expires_in"`
}

func (s *UserService) Login(ctx context.Context, email, password string) (TokenPair, models.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return TokenPair{}, models.User{}, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return TokenPair{}, models.User{}, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	access, refresh, exp, err := s.tm.GeneratePair(u.ID, u.Role)
	if err != nil {
		return TokenPair{}, models.User{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
	}, u, nil
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return TokenPair{}, apperr.New(apperr.KindUnauthorized, "invalid refresh token")
	}
	access, refresh, exp, err := s.tm.GeneratePair(claims.UserID, claims.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
	}, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
