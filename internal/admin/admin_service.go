package admin

import (
	"context"
	"errors"
	"sync"

	"go-absensi/internal/activitylog"
	adminerrors "go-absensi/internal/admin/errors"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const loginDetails = "Admin login successful"

var (
	compareHash = bcrypt.CompareHashAndPassword

	// dummyHash dipakai saat username tidak dikenal agar waktu respons
	// login tetap setara dengan password salah.
	dummyHash = sync.OnceValue(func() []byte {
		h, _ := bcrypt.GenerateFromPassword([]byte("absensi-dummy-password"), bcrypt.DefaultCost)
		return h
	})
)

// ActivityAppender adalah interface lokal; activitylog.Service memenuhinya.
type ActivityAppender interface {
	Append(ctx context.Context, in activitylog.AppendInput) (activitylog.ActivityLogResponse, error)
}

//go:generate mockgen -source=admin_service.go -destination=mock/admin_service_mock.go -package=mock
type Service interface {
	FindByUsername(ctx context.Context, username string) (AdminResponse, error)
	GetByID(ctx context.Context, id string) (AdminResponse, error)
	Create(ctx context.Context, username, password string) (AdminResponse, error)
	EnsureSeed(ctx context.Context, username, password string) error
	UpdateLastLogin(ctx context.Context, id string) error
	Login(ctx context.Context, username, password string) (LoginResponse, error)
}

type service struct {
	repo     Repository
	tokens   *TokenManager
	activity ActivityAppender
	metrics  *metrics.Metrics
	clock    clock.Clock
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	tokens *TokenManager,
	activity ActivityAppender,
	m *metrics.Metrics,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("admin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.service")
	}
	if clk == nil {
		clk = clock.System
	}
	return &service{
		repo:     repo,
		tokens:   tokens,
		activity: activity,
		metrics:  m,
		clock:    clk,
		logger:   l,
	}
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
func VerifyPassword(a *Admin, plaintext string) bool {
	if a == nil {
		return false
	}
	return compareHash([]byte(a.PasswordHash), []byte(plaintext)) == nil
}

func (s *service) FindByUsername(ctx context.Context, username string) (AdminResponse, error) {
	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return AdminResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(a), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AdminResponse, error) {
	adminID, err := uuid.Parse(id)
	if err != nil {
		return AdminResponse{}, adminerrors.ErrAdminNotFound
	}
	a, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return AdminResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(a), nil
}

func (s *service) Create(ctx context.Context, username, password string) (AdminResponse, error) {
	// 1. Hash password (salt per password dari bcrypt)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AdminResponse{}, apperror.ErrInternal.WithCause(err)
	}

	a := &Admin{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Warn("create admin failed", zap.String("username", username), zap.Error(err))
		return AdminResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("admin created", zap.String("admin_id", a.ID.String()), zap.String("username", username))
	return mapToResponse(a), nil
}

func (s *service) EnsureSeed(ctx context.Context, username, password string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(mapRepositoryError(err), adminerrors.ErrAdminNotFound) {
		return mapRepositoryError(err)
	}

	_, err = s.Create(ctx, username, password)
	if errors.Is(err, adminerrors.ErrUsernameTaken) {
		// instance lain sudah lebih dulu membuat akun yang sama
		return nil
	}
	return err
}

func (s *service) UpdateLastLogin(ctx context.Context, id string) error {
	adminID, err := uuid.Parse(id)
	if err != nil {
		return adminerrors.ErrAdminNotFound
	}
	return mapRepositoryError(s.repo.UpdateLastLogin(ctx, adminID, s.clock.Now()))
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	meta := contextutil.ExtractMetadata(ctx)

	// 1. Ambil admin; semua penyebab gagal menghasilkan error yang sama
	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, adminerrors.ErrAdminNotFound) {
			_ = compareHash(dummyHash(), []byte(password))
			s.metrics.ObserveLogin(metrics.ResultInvalid)
			return LoginResponse{}, adminerrors.ErrInvalidCredentials
		}
		log.Error("login lookup failed", zap.Error(err))
		s.metrics.ObserveLogin(metrics.ResultError)
		return LoginResponse{}, mapped
	}

	// 2. Akun harus aktif dan password cocok
	if !a.IsActive || !VerifyPassword(a, password) {
		log.Info("login rejected", zap.String("username", username))
		s.metrics.ObserveLogin(metrics.ResultInvalid)
		return LoginResponse{}, adminerrors.ErrInvalidCredentials
	}

	// 3. Catat waktu login
	if err := s.repo.UpdateLastLogin(ctx, a.ID, s.clock.Now()); err != nil {
		log.Error("update last login failed", zap.String("admin_id", a.ID.String()), zap.Error(err))
		s.metrics.ObserveLogin(metrics.ResultError)
		return LoginResponse{}, mapRepositoryError(err)
	}

	// 4. Activity log; kegagalan tidak membatalkan login
	if s.activity != nil {
		details := loginDetails
		in := activitylog.AppendInput{
			AdminID: a.ID.String(),
			Action:  activitylog.ActionLogin,
			Details: &details,
		}
		if meta.ClientIP != "" {
			in.SubmitterIP = &meta.ClientIP
		}
		if meta.UserAgent != "" {
			in.UserAgent = &meta.UserAgent
		}
		if _, err := s.activity.Append(ctx, in); err != nil {
			log.Error("append login activity failed", zap.String("admin_id", a.ID.String()), zap.Error(err))
		}
	}

	// 5. Generate token
	token, exp, err := s.tokens.Issue(a)
	if err != nil {
		log.Error("issue access token failed", zap.Error(err))
		s.metrics.ObserveLogin(metrics.ResultError)
		return LoginResponse{}, apperror.ErrInternal.WithCause(err)
	}

	s.metrics.ObserveLogin(metrics.ResultSuccess)
	log.Info("admin login success", zap.String("admin_id", a.ID.String()))

	return LoginResponse{
		Admin:       AdminSummary{ID: a.ID.String(), Username: a.Username},
		AccessToken: token,
		ExpiresAt:   exp,
	}, nil
}
