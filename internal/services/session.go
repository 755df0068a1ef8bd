package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

// SessionService issues and validates the opaque session keys that partition
// all per-day state.
type SessionService interface {
	Issue(ctx context.Context) (*types.Session, error)
	// ValidateKey normalizes the raw header value or fails with
	// apperr.ErrInvalidArgument.
	ValidateKey(raw string) (string, error)
	// Ensure registers the key on first use and bumps last_seen_at.
	Ensure(ctx context.Context, sessionKey string) error
}

type sessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.SessionRepo
}

func NewSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.SessionRepo) SessionService {
	return &sessionService{
		db:          db,
		log:         log.With("service", "SessionService"),
		sessionRepo: sessionRepo,
	}
}

func (s *sessionService) Issue(ctx context.Context) (*types.Session, error) {
	session := &types.Session{SessionKey: uuid.NewString()}
	if err := s.sessionRepo.Create(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *sessionService) ValidateKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", fmt.Errorf("%w: session key is required", apperr.ErrInvalidArgument)
	}
	if len(key) > 64 {
		return "", fmt.Errorf("%w: session key too long", apperr.ErrInvalidArgument)
	}
	return key, nil
}

func (s *sessionService) Ensure(ctx context.Context, sessionKey string) error {
	if err := s.sessionRepo.Ensure(ctx, nil, sessionKey); err != nil {
		return fmt.Errorf("ensure session: %w", err)
	}
	if err := s.sessionRepo.Touch(ctx, nil, sessionKey); err != nil {
		s.log.Warn("Session touch failed", "error", err)
	}
	return nil
}
