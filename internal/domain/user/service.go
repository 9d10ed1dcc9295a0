package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"nodex/internal/domain/token"
)

const hashCost = 10

type Servicer interface {
	Signup(ctx context.Context, req SignupRequest) (string, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
	CurrentUser(ctx context.Context, userID string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	tokens    token.Servicer
	log       *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, validator Validator, tokens token.Servicer, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		log:       log.With("component", "user_service"),
		now:       time.Now,
	}
}

// Signup регистрирует пользователя и возвращает токен для него.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if err := s.validator.ValidateSignup(req); err != nil {
		s.log.Debug("signup validation failed", "email", req.Email, "error", err)
		return "", err
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return "", ErrDuplicateEmail
	case !errors.Is(err, ErrNotFound):
		return "", fmt.Errorf("find user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Contact:      req.Contact,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	// гонка двух регистраций разрешается уникальным индексом хранилища
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID)

	return s.issue(u.ID)
}

// Login не различает неизвестный email и неверный пароль.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return "", err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issue(u.ID)
}

func (s *Service) CurrentUser(ctx context.Context, userID string) (User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (s *Service) issue(userID string) (string, error) {
	tok, err := s.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}
