package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go-absensi/internal/activitylog"
	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/i18n"
	"go-absensi/internal/shared/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ActivityRecorder adalah interface lokal; activitylog.Service memenuhinya.
type ActivityRecorder interface {
	Record(ctx context.Context, action, details string)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListQuery) ([]AttendanceResponse, int64, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	Create(ctx context.Context, req CreateAttendanceRequest, submitterIP string) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	CheckDuplicate(ctx context.Context, req CheckDuplicateRequest) (bool, error)
	GetStats(ctx context.Context) (StatsResponse, error)
	Export(ctx context.Context, w io.Writer, branch string) (int, error)
	ExportFilename(ctx context.Context, branch string) string
}

type service struct {
	repo     Repository
	cal      clock.Calendar
	rdb      *redis.Client
	statsTTL time.Duration
	sf       *singleflight.Group
	activity ActivityRecorder
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	cal clock.Calendar,
	rdb *redis.Client,
	statsTTL time.Duration,
	activity ActivityRecorder,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:     repo,
		cal:      cal,
		rdb:      rdb,
		statsTTL: statsTTL,
		sf:       &singleflight.Group{},
		activity: activity,
		metrics:  m,
		logger:   l,
	}
}

// uniqueness lists the values to check; nil pointers are skipped.
type uniqueness struct {
	phone        *string
	socialHandle *string
	name         *string
	school       *string
	from, to     time.Time
	excludeID    uuid.UUID
}

// ensureUnique checks phone, social handle, then name+school; the first
// conflict wins.
func ensureUnique(ctx context.Context, repo Repository, u uniqueness) error {
	if u.phone != nil {
		taken, err := repo.ExistsPhone(ctx, *u.phone, u.excludeID)
		if err != nil {
			return err
		}
		if taken {
			return attendanceerrors.ErrPhoneTaken
		}
	}

	if u.socialHandle != nil {
		taken, err := repo.ExistsSocialHandle(ctx, *u.socialHandle, u.excludeID)
		if err != nil {
			return err
		}
		if taken {
			return attendanceerrors.ErrSocialHandleTaken
		}
	}

	if u.name != nil && u.school != nil {
		taken, err := repo.ExistsNameSchool(ctx, *u.name, *u.school, u.from, u.to, u.excludeID)
		if err != nil {
			return err
		}
		if taken {
			return attendanceerrors.ErrNameSchoolTaken
		}
	}
	return nil
}

func (s *service) record(ctx context.Context, action, details string) {
	if s.activity != nil {
		s.activity.Record(ctx, action, details)
	}
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate attendance stats cache",
			zap.Error(err),
			zap.String("key", statsCacheKey),
		)
	}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]AttendanceResponse, int64, error) {
	q = q.normalize()
	rows, total, err := s.repo.List(ctx, ListFilter{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
		Branch: q.Branch,
	})
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	resp := make([]AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		resp = append(resp, mapToResponse(a))
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	a, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest, submitterIP string) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create attendance requested", zap.String("branch", req.Branch))

	rec := &Attendance{
		ID:           uuid.New(),
		Name:         req.Name,
		Class:        req.Class,
		Phone:        req.Phone,
		SocialHandle: req.SocialHandle,
		School:       req.School,
		City:         req.City,
		Province:     req.Province,
		Branch:       req.Branch,
	}
	if submitterIP != "" {
		rec.SubmitterIP = &submitterIP
	}

	// Cek duplikat dan insert dalam satu transaksi
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		rec.CreatedAt = s.cal.Now()
		from, to := s.cal.DayBounds(rec.CreatedAt)
		if err := ensureUnique(ctx, tx, uniqueness{
			phone:        &rec.Phone,
			socialHandle: &rec.SocialHandle,
			name:         &rec.Name,
			school:       &rec.School,
			from:         from,
			to:           to,
		}); err != nil {
			return err
		}
		return tx.Create(ctx, rec)
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		var appErr *apperror.AppError
		if errors.As(mapped, &appErr) && appErr.Code == apperror.CodeConflict {
			log.Info("create attendance rejected", zap.String("code", appErr.MessageKey))
			s.metrics.ObserveSubmission(metrics.ResultConflict)
		} else {
			log.Error("create attendance failed", zap.Error(err))
			s.metrics.ObserveSubmission(metrics.ResultError)
		}
		return AttendanceResponse{}, mapped
	}

	s.invalidateStats(ctx)
	s.metrics.ObserveSubmission(metrics.ResultSuccess)
	log.Info("create attendance success", zap.String("attendance_id", rec.ID.String()))

	return mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	recordID, err := uuid.Parse(id)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	patch := req.patch()
	var updated *Attendance
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.FindByID(ctx, recordID)
		if err != nil {
			return err
		}

		u := uniqueness{
			phone:        patch.Phone,
			socialHandle: patch.SocialHandle,
			excludeID:    recordID,
		}
		// Pasangan nama+sekolah hasil merge dicek terhadap hari pembuatan record itu sendiri
		if patch.Name != nil || patch.School != nil {
			merged := *existing
			patch.Apply(&merged)
			u.name, u.school = &merged.Name, &merged.School
			u.from, u.to = s.cal.DayBounds(existing.CreatedAt)
		}
		if err := ensureUnique(ctx, tx, u); err != nil {
			return err
		}

		updated, err = tx.Update(ctx, recordID, patch)
		return err
	})
	if err != nil {
		log.Warn("update attendance failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.record(ctx, activitylog.ActionUpdateAttendance, fmt.Sprintf("Updated attendance %s (%s)", updated.ID, updated.Name))
	s.invalidateStats(ctx)
	log.Info("update attendance success", zap.String("attendance_id", id))

	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	recordID, err := uuid.Parse(id)
	if err != nil {
		return attendanceerrors.ErrAttendanceNotFound
	}

	deleted, err := s.repo.Delete(ctx, recordID)
	if err != nil {
		log.Error("delete attendance failed", zap.String("attendance_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if !deleted {
		return attendanceerrors.ErrAttendanceNotFound
	}

	s.record(ctx, activitylog.ActionDeleteAttendance, "Deleted attendance "+id)
	s.invalidateStats(ctx)
	log.Info("delete attendance success", zap.String("attendance_id", id))
	return nil
}

func (s *service) ClearAll(ctx context.Context) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.repo.DeleteAll(ctx); err != nil {
		log.Error("clear attendance failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.record(ctx, activitylog.ActionClearAll, "Cleared all attendance records")
	s.invalidateStats(ctx)
	log.Warn("all attendance records cleared", zap.String("admin_id", contextutil.GetAdminID(ctx)))
	return nil
}

func (s *service) CheckDuplicate(ctx context.Context, req CheckDuplicateRequest) (bool, error) {
	// excludeId yang bukan uuid tidak mungkin cocok dengan record manapun
	excludeID, err := uuid.Parse(req.ExcludeID)
	if err != nil {
		excludeID = uuid.Nil
	}

	var taken bool
	switch req.Type {
	case CheckTypePhone:
		if req.Value == "" {
			return false, apperror.Invalid("value", "required")
		}
		taken, err = s.repo.ExistsPhone(ctx, req.Value, excludeID)
	case CheckTypeSocialHandle, CheckTypeInstagram:
		if req.Value == "" {
			return false, apperror.Invalid("value", "required")
		}
		taken, err = s.repo.ExistsSocialHandle(ctx, req.Value, excludeID)
	case CheckTypeNameSchool:
		if req.Name == "" {
			return false, apperror.Invalid("name", "required")
		}
		if req.School == "" {
			return false, apperror.Invalid("school", "required")
		}
		from, to := s.cal.Today()
		taken, err = s.repo.ExistsNameSchool(ctx, req.Name, req.School, from, to, excludeID)
	default:
		return false, attendanceerrors.ErrInvalidCheckType
	}
	if err != nil {
		s.logger.Error("check duplicate failed", zap.String("type", req.Type), zap.Error(err))
		return false, mapRepositoryError(err)
	}
	return taken, nil
}

func (s *service) GetStats(ctx context.Context) (StatsResponse, error) {
	snap, err := s.loadStats(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	return snap.localize(i18n.Default().PrinterFromContext(ctx), s.cal.Location()), nil
}

func (s *service) loadStats(ctx context.Context) (statsSnapshot, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var snap statsSnapshot
			if json.Unmarshal(cached, &snap) == nil {
				return snap, nil
			}
		}
	}

	// 2. Singleflight: dashboard admin polling bersamaan cukup satu query
	v, err, _ := s.sf.Do(statsCacheKey, func() (interface{}, error) {
		// hasil flight dibagi ke semua pemanggil, jadi lepas dari pembatalan request pertama
		ctx := context.WithoutCancel(ctx)
		now := s.cal.Now()
		sum, err := s.repo.Summary(ctx, statsSince(s.cal, now))
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		snap := buildStats(sum, s.cal, now)

		if s.rdb != nil && s.statsTTL > 0 {
			if b, err := json.Marshal(snap); err == nil {
				if err := s.rdb.Set(ctx, statsCacheKey, b, s.statsTTL).Err(); err != nil {
					s.logger.Warn("failed to cache attendance stats", zap.Error(err))
				}
			}
		}
		return snap, nil
	})
	if err != nil {
		s.logger.Error("compute attendance stats failed", zap.Error(err))
		return statsSnapshot{}, err
	}
	return v.(statsSnapshot), nil
}

func (s *service) Export(ctx context.Context, w io.Writer, branch string) (int, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	p := i18n.Default().PrinterFromContext(ctx)

	var buf bytes.Buffer
	cw := newCSVWriter(&buf)
	cw.writeString(utf8BOM)
	cw.header(p)

	written := 0
	for page := 1; ; page++ {
		rows, total, err := s.repo.List(ctx, ListFilter{Page: page, Limit: exportPageSize, Branch: branch})
		if err != nil {
			log.Error("export attendance failed", zap.Int("page", page), zap.Error(err))
			return 0, mapRepositoryError(err)
		}
		for _, a := range rows {
			written++
			cw.row(written, a, s.cal.Location())
		}
		if len(rows) < exportPageSize || int64(written) >= total {
			break
		}
	}

	if err := cw.flush(); err != nil {
		return 0, apperror.ErrInternal.WithCause(err)
	}
	// Dokumen utuh baru ditulis setelah semua halaman terbaca
	if _, err := buf.WriteTo(w); err != nil {
		return 0, err
	}

	details := fmt.Sprintf("Exported %d attendance records", written)
	if branch != "" {
		details += " for branch " + branch
	}
	s.record(ctx, activitylog.ActionExport, details)
	log.Info("export attendance success", zap.Int("rows", written), zap.String("branch", branch))

	return written, nil
}

func (s *service) ExportFilename(ctx context.Context, branch string) string {
	segment := filenameSegment(branch)
	if segment == "" {
		segment = i18n.T(ctx, "attendance.export_all_branches")
	}
	return i18n.T(ctx, "attendance.export_filename", segment, s.cal.Now().Format("2006-01-02"))
}
