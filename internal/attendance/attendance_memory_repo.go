package attendance

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memoryRecord struct {
	Attendance
	seq uint64 // urutan sisip, pemecah seri createdAt
}

type memoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]memoryRecord
	seq     uint64
}

// memoryRepository is the in-process store. Inside Transaction the write
// lock is already held and every mutation pushes an undo step to journal.
type memoryRepository struct {
	store   *memoryStore
	journal *[]func()
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		store: &memoryStore{records: make(map[uuid.UUID]memoryRecord)},
	}
}

func (r *memoryRepository) inTx() bool {
	return r.journal != nil
}

func (r *memoryRepository) read(fn func()) {
	if !r.inTx() {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	fn()
}

func (r *memoryRepository) write(fn func()) {
	if !r.inTx() {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	fn()
}

func (r *memoryRepository) remember(undo func()) {
	if r.inTx() {
		*r.journal = append(*r.journal, undo)
	}
}

func matchesFilter(a Attendance, search, branch string) bool {
	if branch != "" && a.Branch != branch {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Name), search) ||
		strings.Contains(strings.ToLower(a.School), search) ||
		strings.Contains(strings.ToLower(a.City), search)
}

func (r *memoryRepository) List(_ context.Context, f ListFilter) ([]Attendance, int64, error) {
	search := strings.ToLower(f.Search)

	var matched []memoryRecord
	r.read(func() {
		matched = make([]memoryRecord, 0, len(r.store.records))
		for _, rec := range r.store.records {
			if matchesFilter(rec.Attendance, search, f.Branch) {
				matched = append(matched, rec)
			}
		}
	})

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	total := int64(len(matched))
	start := f.offset()
	if start >= len(matched) {
		return []Attendance{}, total, nil
	}
	end := start + f.Limit
	if f.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	out := make([]Attendance, 0, end-start)
	for _, rec := range matched[start:end] {
		out = append(out, rec.Attendance)
	}
	return out, total, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Attendance, error) {
	var (
		rec memoryRecord
		ok  bool
	)
	r.read(func() { rec, ok = r.store.records[id] })
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a := rec.Attendance
	return &a, nil
}

func (r *memoryRepository) Create(_ context.Context, a *Attendance) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	var err error
	r.write(func() {
		if _, exists := r.store.records[a.ID]; exists {
			err = gorm.ErrDuplicatedKey
			return
		}
		r.store.seq++
		r.store.records[a.ID] = memoryRecord{Attendance: *a, seq: r.store.seq}
		id := a.ID
		r.remember(func() { delete(r.store.records, id) })
	})
	return err
}

func (r *memoryRepository) Update(_ context.Context, id uuid.UUID, patch AttendancePatch) (*Attendance, error) {
	var (
		updated Attendance
		found   bool
	)
	r.write(func() {
		rec, ok := r.store.records[id]
		if !ok {
			return
		}
		found = true
		prev := rec
		patch.Apply(&rec.Attendance)
		r.store.records[id] = rec
		r.remember(func() { r.store.records[id] = prev })
		updated = rec.Attendance
	})
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	return &updated, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	var found bool
	r.write(func() {
		rec, ok := r.store.records[id]
		if !ok {
			return
		}
		found = true
		delete(r.store.records, id)
		r.remember(func() { r.store.records[id] = rec })
	})
	return found, nil
}

func (r *memoryRepository) DeleteAll(_ context.Context) error {
	r.write(func() {
		prev := r.store.records
		r.store.records = make(map[uuid.UUID]memoryRecord)
		r.remember(func() { r.store.records = prev })
	})
	return nil
}

func (r *memoryRepository) exists(match func(Attendance) bool, excludeID uuid.UUID) bool {
	var found bool
	r.read(func() {
		for id, rec := range r.store.records {
			if id != excludeID && match(rec.Attendance) {
				found = true
				return
			}
		}
	})
	return found
}

func (r *memoryRepository) ExistsPhone(_ context.Context, phone string, excludeID uuid.UUID) (bool, error) {
	return r.exists(func(a Attendance) bool { return a.Phone == phone }, excludeID), nil
}

func (r *memoryRepository) ExistsSocialHandle(_ context.Context, handle string, excludeID uuid.UUID) (bool, error) {
	return r.exists(func(a Attendance) bool { return a.SocialHandle == handle }, excludeID), nil
}

func (r *memoryRepository) ExistsNameSchool(_ context.Context, name, school string, from, to time.Time, excludeID uuid.UUID) (bool, error) {
	return r.exists(func(a Attendance) bool {
		return a.Name == name && a.School == school &&
			!a.CreatedAt.Before(from) && a.CreatedAt.Before(to)
	}, excludeID), nil
}

func (r *memoryRepository) Summary(_ context.Context, since time.Time) (Summary, error) {
	s := Summary{ByBranch: make(map[string]int64)}
	r.read(func() {
		for _, rec := range r.store.records {
			s.Total++
			s.ByBranch[rec.Branch]++
			if !rec.CreatedAt.Before(since) {
				s.Recent = append(s.Recent, rec.CreatedAt)
			}
		}
	})
	return s, nil
}

func (r *memoryRepository) Transaction(ctx context.Context, fn func(repo Repository) error) (err error) {
	if r.inTx() {
		return fn(r)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var journal []func()
	tx := &memoryRepository{store: r.store, journal: &journal}

	committed := false
	defer func() {
		if committed {
			return
		}
		for i := len(journal) - 1; i >= 0; i-- {
			journal[i]()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	committed = true
	return nil
}
