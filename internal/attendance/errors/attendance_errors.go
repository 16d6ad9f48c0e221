package attendanceerrors

import (
	"go-absensi/internal/shared/apperror"
	"net/http"
)

var (
	ErrAttendanceNotFound = apperror.NewLocalized(
		apperror.CodeNotFound,
		"attendance.not_found",
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrPhoneTaken = apperror.NewLocalized(
		apperror.CodeConflict,
		"attendance.phone_taken",
		"Phone number is already registered",
		http.StatusConflict,
	)
	ErrSocialHandleTaken = apperror.NewLocalized(
		apperror.CodeConflict,
		"attendance.social_handle_taken",
		"Social handle is already registered",
		http.StatusConflict,
	)
	ErrNameSchoolTaken = apperror.NewLocalized(
		apperror.CodeConflict,
		"attendance.name_school_taken",
		"Name and school are already registered today",
		http.StatusConflict,
	)
)

var ErrInvalidCheckType = apperror.NewLocalized(
	apperror.CodeInvalidInput,
	"attendance.invalid_check_type",
	"Unknown duplicate check type",
	http.StatusBadRequest,
)
