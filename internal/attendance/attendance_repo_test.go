package attendance_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-absensi/internal/attendance"
	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormRepo(t *testing.T) (attendance.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return attendance.NewRepository(gdb), sqlMock
}

func TestRepository_ListEscapesSearch(t *testing.T) {
	repo, sqlMock := setupGormRepo(t)
	ctx := context.Background()

	sqlMock.ExpectQuery(regexp.QuoteMeta(`(LOWER(name) LIKE $1 ESCAPE '\' OR LOWER(school) LIKE $2`)).
		WithArgs(`%50\%%`, `%50\%%`, `%50\%%`, "Bandung").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	sqlMock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC,id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "branch", "created_at"}).
			AddRow(uuid.New(), "Budi", "Bandung", time.Now()))

	rows, total, err := repo.List(ctx, attendance.ListFilter{Page: 1, Limit: 10, Search: "50%", Branch: "Bandung"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, rows, 1)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_ListSkipsPageQueryPastEnd(t *testing.T) {
	repo, sqlMock := setupGormRepo(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "attendance_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	rows, total, err := repo.List(context.Background(), attendance.ListFilter{Page: 3, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, rows)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_FindByIDNotFound(t *testing.T) {
	repo, sqlMock := setupGormRepo(t)
	id := uuid.New()

	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "attendance_records" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, sqlMock := setupGormRepo(t)
	id := uuid.New()

	sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "attendance_records" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), id)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepository_ExistsPhoneExcludesRecord(t *testing.T) {
	repo, sqlMock := setupGormRepo(t)
	id := uuid.New()

	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "attendance_records" WHERE phone = $1 AND id <> $2`)).
		WithArgs("081234567890", id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.ExistsPhone(context.Background(), "081234567890", id)
	assert.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_Summary(t *testing.T) {
	repo, sqlMock := setupGormRepo(t)
	since := time.Date(2026, 2, 25, 0, 0, 0, 0, wib)
	at := since.Add(time.Hour)

	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT branch, COUNT(*) AS count FROM "attendance_records" GROUP BY "branch"`)).
		WillReturnRows(sqlmock.NewRows([]string{"branch", "count"}).AddRow("Bandung", 3).AddRow("Bogor", 2))
	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT "created_at" FROM "attendance_records" WHERE created_at >= $1`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(at))

	s, err := repo.Summary(context.Background(), since)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), s.Total)
	assert.Equal(t, map[string]int64{"Bandung": 3, "Bogor": 2}, s.ByBranch)
	assert.Len(t, s.Recent, 1)
}

func TestRepository_TransactionLocksTable(t *testing.T) {
	lock := regexp.QuoteMeta("LOCK TABLE attendance_records IN SHARE ROW EXCLUSIVE MODE")

	t.Run("commit", func(t *testing.T) {
		repo, sqlMock := setupGormRepo(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(lock).WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		err := repo.Transaction(context.Background(), func(attendance.Repository) error { return nil })
		assert.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		repo, sqlMock := setupGormRepo(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(lock).WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectRollback()

		boom := errors.New("boom")
		err := repo.Transaction(context.Background(), func(attendance.Repository) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestService_CreateMapsUniqueViolation(t *testing.T) {
	repo, sqlMock := setupGormRepo(t)
	svc := attendance.NewService(repo, clock.NewCalendar(clock.Fixed(fixedNow), wib), nil, 0, nil, nil)
	count := func(n int) *sqlmock.Rows { return sqlmock.NewRows([]string{"count"}).AddRow(n) }

	// Insert yang kalah balapan tetap ditolak oleh unique index
	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("LOCK TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectQuery(`WHERE phone = \$1`).WillReturnRows(count(0))
	sqlMock.ExpectQuery(`WHERE social_handle = \$1`).WillReturnRows(count(0))
	sqlMock.ExpectQuery(`name = \$1 AND school = \$2`).WillReturnRows(count(0))
	sqlMock.ExpectExec(`INSERT INTO "attendance_records"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_social_handle"})
	sqlMock.ExpectRollback()

	_, err := svc.Create(context.Background(), validRequest(), "")
	assert.ErrorIs(t, err, attendanceerrors.ErrSocialHandleTaken)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
