package attendance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, f ListFilter) ([]Attendance, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Attendance, error)
	// Create is a pure insert; duplicate rules are enforced by the service.
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, id uuid.UUID, patch AttendancePatch) (*Attendance, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAll(ctx context.Context) error

	// excludeID == uuid.Nil berarti tidak ada pengecualian.
	ExistsPhone(ctx context.Context, phone string, excludeID uuid.UUID) (bool, error)
	ExistsSocialHandle(ctx context.Context, handle string, excludeID uuid.UUID) (bool, error)
	ExistsNameSchool(ctx context.Context, name, school string, from, to time.Time, excludeID uuid.UUID) (bool, error)

	Summary(ctx context.Context, since time.Time) (Summary, error)

	// Transaction runs fn with exclusive access to the store. Nothing fn
	// wrote is kept when it returns an error.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

const lockTableSQL = "LOCK TABLE attendance_records IN SHARE ROW EXCLUSIVE MODE"

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *repository) filtered(ctx context.Context, f ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Attendance{})
	if f.Search != "" {
		like := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		q = q.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(school) LIKE ? ESCAPE '\' OR LOWER(city) LIKE ? ESCAPE '\')`,
			like, like, like,
		)
	}
	if f.Branch != "" {
		q = q.Where("branch = ?", f.Branch)
	}
	return q
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Attendance, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]Attendance, 0, f.Limit)
	if total == 0 || int64(f.offset()) >= total {
		return rows, total, nil
	}

	err := r.filtered(ctx, f).
		Order("created_at DESC").
		Order("id DESC").
		Offset(f.offset()).
		Limit(f.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, patch AttendancePatch) (*Attendance, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	err = r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", id).
		Updates(patch.columns()).Error
	if err != nil {
		return nil, err
	}

	patch.Apply(existing)
	return existing, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Attendance{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&Attendance{}).Error
}

func (r *repository) exists(q *gorm.DB, excludeID uuid.UUID) (bool, error) {
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) ExistsPhone(ctx context.Context, phone string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Attendance{}).Where("phone = ?", phone)
	return r.exists(q, excludeID)
}

func (r *repository) ExistsSocialHandle(ctx context.Context, handle string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Attendance{}).Where("social_handle = ?", handle)
	return r.exists(q, excludeID)
}

func (r *repository) ExistsNameSchool(ctx context.Context, name, school string, from, to time.Time, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Attendance{}).
		Where("name = ? AND school = ?", name, school).
		Where("created_at >= ? AND created_at < ?", from, to)
	return r.exists(q, excludeID)
}

type branchCount struct {
	Branch string
	Count  int64
}

func (r *repository) Summary(ctx context.Context, since time.Time) (Summary, error) {
	var rows []branchCount
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Select("branch, COUNT(*) AS count").
		Group("branch").
		Scan(&rows).Error
	if err != nil {
		return Summary{}, err
	}

	s := Summary{ByBranch: make(map[string]int64, len(rows))}
	for _, row := range rows {
		s.ByBranch[row.Branch] = row.Count
		s.Total += row.Count
	}

	err = r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &s.Recent).Error
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

func (r *repository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Postgres: serialisasi check-then-insert antar transaksi, read tetap jalan.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(lockTableSQL).Error; err != nil {
				return err
			}
		}
		return fn(&repository{db: tx})
	})
}
