package admin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-absensi/internal/activitylog"
	"go-absensi/internal/admin"
	adminerrors "go-absensi/internal/admin/errors"
	adminMock "go-absensi/internal/admin/mock"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type serviceDeps struct {
	service  admin.Service
	repo     *adminMock.MockRepository
	activity *adminMock.MockActivityAppender
	tokens   *admin.TokenManager
	metrics  *metrics.Metrics
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	repo := adminMock.NewMockRepository(ctrl)
	activity := adminMock.NewMockActivityAppender(ctrl)
	tokens := admin.NewTokenManager("test-secret", time.Hour, clock.Fixed(fixedNow))
	m := metrics.New()

	return &serviceDeps{
		service:  admin.NewService(repo, tokens, activity, m, clock.Fixed(fixedNow)),
		repo:     repo,
		activity: activity,
		tokens:   tokens,
		metrics:  m,
	}
}

func newAdmin(t *testing.T, password string, active bool) *admin.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &admin.Admin{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: string(hash),
		IsActive:     active,
	}
}

func TestService_Login(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := contextutil.WithClient(context.Background(), "10.1.1.1", "Mozilla/5.0")

	t.Run("success", func(t *testing.T) {
		acc := newAdmin(t, "admin123", true)

		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(acc, nil)
		deps.repo.EXPECT().UpdateLastLogin(ctx, acc.ID, fixedNow).Return(nil)
		deps.activity.EXPECT().
			Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, in activitylog.AppendInput) (activitylog.ActivityLogResponse, error) {
				assert.Equal(t, acc.ID.String(), in.AdminID)
				assert.Equal(t, "login", in.Action)
				assert.Equal(t, "Admin login successful", *in.Details)
				assert.Equal(t, "10.1.1.1", *in.SubmitterIP)
				assert.Equal(t, "Mozilla/5.0", *in.UserAgent)
				return activitylog.ActivityLogResponse{}, nil
			})

		resp, err := deps.service.Login(ctx, "admin", "admin123")

		assert.NoError(t, err)
		assert.Equal(t, acc.ID.String(), resp.Admin.ID)
		assert.Equal(t, "admin", resp.Admin.Username)
		assert.Equal(t, fixedNow.Add(time.Hour), resp.ExpiresAt)

		id, username, err := deps.tokens.Verify(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, acc.ID.String(), id)
		assert.Equal(t, "admin", username)
		assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.AdminLogins.WithLabelValues(metrics.ResultSuccess)))
	})

	t.Run("wrong password", func(t *testing.T) {
		acc := newAdmin(t, "admin123", true)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(acc, nil)

		_, err := deps.service.Login(ctx, "admin", "wrongpass")
		assert.ErrorIs(t, err, adminerrors.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		acc := newAdmin(t, "admin123", false)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(acc, nil)

		_, err := deps.service.Login(ctx, "admin", "admin123")
		assert.ErrorIs(t, err, adminerrors.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		var compared [][]byte
		restore := admin.SetCompareHash(func(hashed, password []byte) error {
			compared = append(compared, password)
			return bcrypt.CompareHashAndPassword(hashed, password)
		})
		defer restore()

		deps.repo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Login(ctx, "ghost", "admin123")
		assert.ErrorIs(t, err, adminerrors.ErrInvalidCredentials)
		// tetap membandingkan hash agar waktu respons tidak membocorkan username
		assert.Equal(t, [][]byte{[]byte("admin123")}, compared)
	})

	t.Run("activity failure does not block login", func(t *testing.T) {
		acc := newAdmin(t, "admin123", true)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(acc, nil)
		deps.repo.EXPECT().UpdateLastLogin(ctx, acc.ID, fixedNow).Return(nil)
		deps.activity.EXPECT().Append(ctx, gomock.Any()).Return(activitylog.ActivityLogResponse{}, errors.New("db down"))

		resp, err := deps.service.Login(ctx, "admin", "admin123")
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(nil, errors.New("connection refused"))

		_, err := deps.service.Login(ctx, "admin", "admin123")
		assert.ErrorIs(t, err, apperror.ErrInternal)
	})
}

func TestService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	t.Run("hashes password", func(t *testing.T) {
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *admin.Admin) error {
				assert.NotEqual(t, "s3cret!", a.PasswordHash)
				assert.True(t, admin.VerifyPassword(a, "s3cret!"))
				assert.True(t, a.IsActive)
				return nil
			})

		resp, err := deps.service.Create(ctx, "operator", "s3cret!")
		assert.NoError(t, err)
		assert.Equal(t, "operator", resp.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(gorm.ErrDuplicatedKey)

		_, err := deps.service.Create(ctx, "operator", "s3cret!")
		assert.ErrorIs(t, err, adminerrors.ErrUsernameTaken)
	})
}

func TestService_EnsureSeed(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	t.Run("already exists", func(t *testing.T) {
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(&admin.Admin{Username: "admin"}, nil)

		assert.NoError(t, deps.service.EnsureSeed(ctx, "admin", "admin123"))
	})

	t.Run("creates when absent", func(t *testing.T) {
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		assert.NoError(t, deps.service.EnsureSeed(ctx, "admin", "admin123"))
	})
}

func TestService_UpdateLastLogin(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		id := uuid.New()
		deps.repo.EXPECT().UpdateLastLogin(ctx, id, fixedNow).Return(gorm.ErrRecordNotFound)

		err := deps.service.UpdateLastLogin(ctx, id.String())
		assert.ErrorIs(t, err, adminerrors.ErrAdminNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		err := deps.service.UpdateLastLogin(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, adminerrors.ErrAdminNotFound)
	})
}

func TestVerifyPassword(t *testing.T) {
	acc := newAdmin(t, "admin123", true)

	assert.True(t, admin.VerifyPassword(acc, "admin123"))
	assert.False(t, admin.VerifyPassword(acc, "Admin123"))
	assert.False(t, admin.VerifyPassword(nil, "admin123"))
}
