// file: internals/features/timesheets/repository/memory_store.go
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "personel_backend/internals/features/timesheets/model"
)

// MemoryStore keeps month records in process memory (tests, local demos).
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*m.MonthRecord
	order   []uuid.UUID // insertion order, newest last

	// Err, when set, is returned by every write. Reads keep working.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[uuid.UUID]*m.MonthRecord{}}
}

func (s *MemoryStore) FetchLatestTemplatesSnapshot(_ context.Context, regionID uuid.UUID) ([]m.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		rec := s.records[s.order[i]]
		if rec.RegionID != regionID {
			continue
		}
		out := make([]m.Template, len(rec.TemplatesSnapshot))
		for j, t := range rec.TemplatesSnapshot {
			out[j] = t.Clone()
		}
		return out, nil
	}
	return nil, nil
}

func (s *MemoryStore) FetchMonthRecord(_ context.Context, regionID uuid.UUID, yearMonth string) (*m.MonthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.RegionID == regionID && rec.YearMonth == yearMonth {
			return rec.Clone(), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FetchMonthRecordByID(_ context.Context, id uuid.UUID) (*m.MonthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id].Clone(), nil
}

func (s *MemoryStore) ListMonthRecords(_ context.Context, regionID uuid.UUID) ([]m.MonthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []m.MonthRecord{}
	for _, rec := range s.records {
		if rec.RegionID == regionID {
			out = append(out, *rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth > out[j].YearMonth })
	return out, nil
}

func (s *MemoryStore) InsertMonthRecord(_ context.Context, rec *m.MonthRecord) (*m.MonthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.records {
		if existing.RegionID == rec.RegionID && existing.YearMonth == rec.YearMonth {
			return nil, ErrDuplicateMonth
		}
	}
	cp := rec.Clone()
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.records[cp.ID] = cp
	s.order = append(s.order, cp.ID)
	return cp.Clone(), nil
}

func (s *MemoryStore) UpdateMonthRecordDays(_ context.Context, id uuid.UUID, days map[string]m.DaySnapshot) error {
	return s.mutate(id, func(rec *m.MonthRecord) {
		rec.Days = m.CloneDays(days)
	})
}

func (s *MemoryStore) UpdateMonthRecordOnSave(
	_ context.Context,
	id uuid.UUID,
	days map[string]m.DaySnapshot,
	templates []m.Template,
	savedBy uuid.UUID,
	savedAt time.Time,
) error {
	return s.mutate(id, func(rec *m.MonthRecord) {
		rec.Status = m.MonthSaved
		rec.Days = m.CloneDays(days)
		rec.TemplatesSnapshot = make([]m.Template, len(templates))
		for i, t := range templates {
			rec.TemplatesSnapshot[i] = t.Clone()
		}
		by := savedBy
		at := savedAt
		rec.SavedBy = &by
		rec.SavedAt = &at
	})
}

func (s *MemoryStore) UpdateMonthRecordStatus(_ context.Context, id uuid.UUID, status m.MonthStatus) error {
	return s.mutate(id, func(rec *m.MonthRecord) {
		rec.Status = status
	})
}

// PutRaw stores a record as-is (no validation). Lets tests seed corrupt snapshots.
func (s *MemoryStore) PutRaw(rec *m.MonthRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := rec.Clone()
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	s.records[cp.ID] = cp
	s.order = append(s.order, cp.ID)
}

func (s *MemoryStore) mutate(id uuid.UUID, fn func(*m.MonthRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	rec, ok := s.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(rec)
	rec.UpdatedAt = time.Now()
	return nil
}
