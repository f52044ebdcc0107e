// README: Best-effort estimate history; persistence failures never fail an estimate.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrDisabled = errors.New("estimate history is not configured")

type Repository interface {
	Insert(ctx context.Context, r Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
}

type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService accepts a nil repo, in which case Record is a no-op and List
// returns ErrDisabled.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) Enabled() bool { return s != nil && s.repo != nil }

// Record stores r, assigning an id and timestamp when missing. Errors are
// logged only.
func (s *Service) Record(ctx context.Context, r Record) {
	if !s.Enabled() {
		return
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		s.logger.Warn("failed to record trip estimate", zap.String("id", r.ID.String()), zap.Error(err))
	}
}

// List returns the most recent records. limit ≤ 0 means DefaultListLimit;
// larger than MaxListLimit is clamped.
func (s *Service) List(ctx context.Context, limit int) ([]Record, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	return s.repo.ListRecent(ctx, ClampLimit(limit))
}

func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
