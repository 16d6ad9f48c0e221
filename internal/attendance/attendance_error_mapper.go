package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrAttendanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_attendance_phone":
				return attendanceerrors.ErrPhoneTaken
			case "uq_attendance_social_handle":
				return attendanceerrors.ErrSocialHandleTaken
			}
		}
	}

	// sqlite: "UNIQUE constraint failed: attendance_records.phone"
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint failed") {
		switch {
		case strings.Contains(errMsg, "attendance_records.phone"):
			return attendanceerrors.ErrPhoneTaken
		case strings.Contains(errMsg, "attendance_records.social_handle"):
			return attendanceerrors.ErrSocialHandleTaken
		}
	}

	return apperror.ErrInternal.WithCause(err)
}
