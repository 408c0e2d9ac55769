package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/intelvestor/gateway/internal/metrics"
	"github.com/intelvestor/gateway/internal/model"
	"github.com/intelvestor/gateway/internal/repository"
)

// User directory errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrMissingEmail = errors.New("identity claims carry no email")
)

// UserStore persists user records.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// CreateUser stores user and overwrites it with the persisted row,
	// which may carry collections from an earlier record with the same ID.
	CreateUser(ctx context.Context, user *model.User) error
}

// UserService keeps a directory of users keyed by email.
type UserService struct {
	store   UserStore
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		store:   store,
		metrics: recorder,
		logger:  logger.With("component", "user_directory"),
		now:     time.Now,
	}
}

// SyncUser returns the record stored under the claims' email, creating it
// from the claims on first sight. An existing record is returned unchanged,
// even when the claims' subject or name differ from it.
func (s *UserService) SyncUser(ctx context.Context, claims model.IdentityClaims) (*model.User, error) {
	if strings.TrimSpace(claims.Email) == "" {
		return nil, ErrMissingEmail
	}

	existing, err := s.store.GetUserByEmail(ctx, claims.Email)
	if err == nil {
		s.metrics.IncUserSync("existing")
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := model.NewUserFromClaims(claims, s.now().UTC())
	if err := s.store.CreateUser(ctx, user); err != nil {
		// A concurrent sync for the same email won the insert.
		if errors.Is(err, repository.ErrEmailExists) {
			winner, getErr := s.store.GetUserByEmail(ctx, claims.Email)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load concurrently created user: %w", getErr)
			}
			s.metrics.IncUserSync("existing")
			return winner, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserSync("created")
	s.logger.Info("user_created", "user_id", user.ID)
	return user, nil
}

// FindUser returns the record whose primary key is subject.
func (s *UserService) FindUser(ctx context.Context, subject string) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
