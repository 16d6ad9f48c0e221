package admin

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=admin_repo.go -destination=mock/admin_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Admin) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	var a Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	var a Admin
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Admin{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_login_at": at, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]Admin
	byName map[string]uuid.UUID
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]Admin),
		byName: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepository) Create(_ context.Context, a *Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[a.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	r.byID[a.ID] = *a
	r.byName[a.Username] = a.ID
	return nil
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memoryRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.LastLoginAt = &at
	a.UpdatedAt = at
	r.byID[id] = a
	return nil
}
