package activitylog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-absensi/internal/activitylog"
	activitylogMock "go-absensi/internal/activitylog/mock"
	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func TestService_Append(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := activitylogMock.NewMockRepository(ctrl)
	svc := activitylog.NewService(repo, clock.Fixed(fixedNow))
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		details := "Admin login successful"
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *activitylog.ActivityLog) error {
				assert.Equal(t, "admin-1", e.AdminID)
				assert.Equal(t, activitylog.ActionLogin, e.Action)
				assert.Equal(t, fixedNow, e.CreatedAt)
				return nil
			})

		resp, err := svc.Append(ctx, activitylog.AppendInput{
			AdminID: "admin-1",
			Action:  activitylog.ActionLogin,
			Details: &details,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Admin login successful", *resp.Details)
		assert.Nil(t, resp.UserAgent)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := svc.Append(ctx, activitylog.AppendInput{AdminID: "admin-1", Action: "x"})
		assert.Error(t, err)
	})
}

func TestService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := activitylogMock.NewMockRepository(ctrl)
	svc := activitylog.NewService(repo, clock.Fixed(fixedNow))

	ctx := contextutil.WithAdminID(context.Background(), "admin-7")
	ctx = contextutil.WithClient(ctx, "10.0.0.5", "curl/8.0")

	t.Run("takes admin and client from context", func(t *testing.T) {
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *activitylog.ActivityLog) error {
				assert.Equal(t, "admin-7", e.AdminID)
				assert.Equal(t, activitylog.ActionClearAll, e.Action)
				assert.Equal(t, "10.0.0.5", *e.SubmitterIP)
				assert.Equal(t, "curl/8.0", *e.UserAgent)
				assert.Equal(t, "all records", *e.Details)
				return nil
			})

		svc.Record(ctx, activitylog.ActionClearAll, "all records")
	})

	t.Run("failure does not panic", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		assert.NotPanics(t, func() {
			svc.Record(ctx, activitylog.ActionExport, "")
		})
	})
}

func TestService_Recent_ClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := activitylogMock.NewMockRepository(ctrl)
	svc := activitylog.NewService(repo, clock.Fixed(fixedNow))
	ctx := context.Background()

	repo.EXPECT().Recent(ctx, activitylog.DefaultRecentLimit).Return(nil, nil)
	_, err := svc.Recent(ctx, 0)
	assert.NoError(t, err)

	repo.EXPECT().Recent(ctx, activitylog.MaxRecentLimit).Return([]activitylog.ActivityLog{{Action: "login"}}, nil)
	resp, err := svc.Recent(ctx, 5000)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestMemoryRepository_RecentNewestFirst(t *testing.T) {
	repo := activitylog.NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.Create(ctx, &activitylog.ActivityLog{
			AdminID:   "a",
			Action:    "login",
			CreatedAt: fixedNow.Add(time.Duration(i) * time.Minute),
		})
		assert.NoError(t, err)
	}
	// sama timestamp dengan entry terakhir: yang disisipkan belakangan tampil duluan
	last := &activitylog.ActivityLog{AdminID: "a", Action: "export", CreatedAt: fixedNow.Add(2 * time.Minute)}
	assert.NoError(t, repo.Create(ctx, last))

	logs, err := repo.Recent(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, "export", logs[0].Action)
	assert.Equal(t, fixedNow.Add(2*time.Minute), logs[1].CreatedAt)
}
