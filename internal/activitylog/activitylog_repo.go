package activitylog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=activitylog_repo.go -destination=mock/activitylog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *ActivityLog) error
	Recent(ctx context.Context, limit int) ([]ActivityLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *ActivityLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Recent(ctx context.Context, limit int) ([]ActivityLog, error) {
	var logs []ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

type memoryRepository struct {
	mu      sync.RWMutex
	entries []ActivityLog
}

// NewMemoryRepository keeps entries in process memory; they are lost on restart.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, entry *ActivityLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryRepository) Recent(_ context.Context, limit int) ([]ActivityLog, error) {
	r.mu.RLock()
	out := make([]ActivityLog, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
