package activitylog

import (
	"context"

	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 200
)

//go:generate mockgen -source=activitylog_service.go -destination=mock/activitylog_service_mock.go -package=mock
type Service interface {
	Append(ctx context.Context, in AppendInput) (ActivityLogResponse, error)
	// Record appends an entry for the admin on ctx. Failures are logged only.
	Record(ctx context.Context, action, details string)
	Recent(ctx context.Context, limit int) ([]ActivityLogResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("activitylog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.service")
	}
	if clk == nil {
		clk = clock.System
	}
	return &service{repo: repo, clock: clk, logger: l}
}

func (s *service) Append(ctx context.Context, in AppendInput) (ActivityLogResponse, error) {
	entry := &ActivityLog{
		ID:          uuid.New(),
		AdminID:     in.AdminID,
		Action:      in.Action,
		Details:     in.Details,
		SubmitterIP: in.SubmitterIP,
		UserAgent:   in.UserAgent,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return ActivityLogResponse{}, err
	}
	return mapToResponse(*entry), nil
}

func (s *service) Record(ctx context.Context, action, details string) {
	meta := contextutil.ExtractMetadata(ctx)
	in := AppendInput{
		AdminID:     meta.AdminID,
		Action:      action,
		Details:     optional(details),
		SubmitterIP: optional(meta.ClientIP),
		UserAgent:   optional(meta.UserAgent),
	}
	if _, err := s.Append(ctx, in); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("append activity log failed",
			zap.String("request_id", meta.RequestID),
			zap.String("admin_id", meta.AdminID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *service) Recent(ctx context.Context, limit int) ([]ActivityLogResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	logs, err := s.repo.Recent(ctx, limit)
	if err != nil {
		s.logger.Error("list activity logs failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, mapToResponse(l))
	}
	return resp, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
