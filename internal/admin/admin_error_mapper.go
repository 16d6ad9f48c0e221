package admin

import (
	"errors"
	"strings"

	adminerrors "go-absensi/internal/admin/errors"
	"go-absensi/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return adminerrors.ErrAdminNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return adminerrors.ErrUsernameTaken
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_admin_username" {
			return adminerrors.ErrUsernameTaken
		}
	}

	// sqlite: "UNIQUE constraint failed: admin_users.username"
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "admin_users.username") {
		return adminerrors.ErrUsernameTaken
	}

	return apperror.ErrInternal.WithCause(err)
}
