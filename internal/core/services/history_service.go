package services

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
)

const defaultBorderWidth = 1

// HistoryStore owns the date-indexed log of habit entries. All reads and
// writes go through its methods; callers only ever see copies.
type HistoryStore struct {
	storage domain.Storage
	colors  domain.ColorAssigner

	mu      sync.RWMutex
	history domain.HabitHistory

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(domain.HistoryEvent)
}

func NewHistoryStore(storage domain.Storage, colors domain.ColorAssigner) *HistoryStore {
	return &HistoryStore{
		storage: storage,
		colors:  colors,
		history: make(domain.HabitHistory),
		subs:    make(map[int]func(domain.HistoryEvent)),
	}
}

// Subscribe registers fn for every mutation of the history. fn runs after the
// mutation is applied and persisted, outside the store lock.
func (s *HistoryStore) Subscribe(fn func(domain.HistoryEvent)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *HistoryStore) notify(ev domain.HistoryEvent) {
	s.subMu.Lock()
	fns := make([]func(domain.HistoryEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// LoadHistory merges the persisted history into memory. Stored dates replace
// in-memory ones; nothing changes when no history was saved.
func (s *HistoryStore) LoadHistory(ctx context.Context) {
	var stored domain.HabitHistory
	if !s.storage.Load(ctx, domain.HistoryKey, &stored) {
		historyOperations.WithLabelValues("load", "absent").Inc()
		return
	}

	s.mu.Lock()
	for date, entries := range stored {
		entries = normalizeDay(entries)
		if len(entries) == 0 {
			delete(s.history, date)
			continue
		}
		s.history[date] = entries
	}
	days := len(s.history)
	s.mu.Unlock()

	historyOperations.WithLabelValues("load", "ok").Inc()
	log.Printf("[HISTORY] Loaded %d days from storage", days)
	s.notify(domain.HistoryEvent{Type: domain.HistoryEventLoaded})
}

// ResetHistory removes every date and persists the empty history.
func (s *HistoryStore) ResetHistory(ctx context.Context) {
	s.mu.Lock()
	for date := range s.history {
		delete(s.history, date)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	historyOperations.WithLabelValues("reset", "ok").Inc()
	s.notify(domain.HistoryEvent{Type: domain.HistoryEventReset})
}

// UpdateValue records value for the habit data.Title on data.Date. The first
// call for a pair creates the entry with a fresh color; later calls replace
// value and sum in place. The whole history is persisted afterwards.
func (s *HistoryStore) UpdateValue(ctx context.Context, value domain.EntryValue, data domain.HistoryData, sum *float64) (domain.HabitEntry, error) {
	if err := data.Validate(); err != nil {
		historyOperations.WithLabelValues("update", "invalid").Inc()
		return domain.HabitEntry{}, err
	}
	if !value.IsSet() {
		historyOperations.WithLabelValues("update", "invalid").Inc()
		return domain.HabitEntry{}, domain.ErrHistoryValueUnset
	}

	s.mu.Lock()
	entries := s.history[data.Date]

	idx := -1
	for i := range entries {
		if entries[i].Name == data.Title {
			idx = i
			break
		}
	}

	if idx >= 0 {
		entry := &entries[idx]
		entry.Value = value
		entry.Sum = domain.CloneFloat(sum)
		entry.Recompute()
	} else {
		color := s.colors.Assign()
		entry := domain.HabitEntry{
			Name:            data.Title,
			Value:           value,
			Sum:             domain.CloneFloat(sum),
			BackgroundColor: color,
			BorderColor:     color,
			BorderWidth:     defaultBorderWidth,
		}
		if data.Goal != nil && *data.Goal != 0 {
			entry.Goal = domain.CloneFloat(data.Goal)
		}
		entry.Recompute()
		entries = append(entries, entry)
		idx = len(entries) - 1
	}
	s.history[data.Date] = entries
	result := entries[idx].Clone()

	s.persistLocked(ctx)
	s.mu.Unlock()

	historyOperations.WithLabelValues("update", "ok").Inc()
	s.notify(domain.HistoryEvent{Type: domain.HistoryEventUpdated, Date: data.Date, Title: data.Title})
	return result, nil
}

// RemoveEntry deletes the entry named title on date. A day left without
// entries is dropped. Missing dates or names are a no-op.
func (s *HistoryStore) RemoveEntry(ctx context.Context, date, title string) bool {
	s.mu.Lock()
	entries, ok := s.history[date]
	if !ok {
		s.mu.Unlock()
		historyOperations.WithLabelValues("remove", "miss").Inc()
		return false
	}

	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if e.Name == title {
			removed = true
			continue
		}
		kept = append(kept, e)
	}

	if len(kept) == 0 {
		delete(s.history, date)
	} else {
		s.history[date] = kept
	}

	if removed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if !removed {
		historyOperations.WithLabelValues("remove", "miss").Inc()
		return false
	}

	historyOperations.WithLabelValues("remove", "ok").Inc()
	s.notify(domain.HistoryEvent{Type: domain.HistoryEventRemoved, Date: date, Title: title})
	return true
}

// History returns a copy of the whole mapping.
func (s *HistoryStore) History() domain.HabitHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history.Clone()
}

// OrderedHistory returns the days in chronological order. Keys that are not
// DD.MM.YYYY dates sort after the valid ones, lexicographically.
func (s *HistoryStore) OrderedHistory() domain.OrderedHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, 0, len(s.history))
	for date := range s.history {
		dates = append(dates, date)
	}
	sortDates(dates)

	ordered := make(domain.OrderedHistory, 0, len(dates))
	for _, date := range dates {
		ordered = append(ordered, domain.HistoryDay{
			Date:    date,
			Entries: s.history.Entries(date),
		})
	}
	return ordered
}

// Dates lists the recorded dates in chronological order.
func (s *HistoryStore) Dates() []string {
	return s.OrderedHistory().Dates()
}

// FilteredHistoryByDate keeps the days whose YYYY-MM-DD form lies within
// [minDate, maxDate], both bounds included.
func (s *HistoryStore) FilteredHistoryByDate(minDate, maxDate string) domain.OrderedHistory {
	return filterByDate(s.OrderedHistory(), minDate, maxDate)
}

func filterByDate(ordered domain.OrderedHistory, minDate, maxDate string) domain.OrderedHistory {
	filtered := make(domain.OrderedHistory, 0, len(ordered))
	for _, day := range ordered {
		iso := domain.DisplayToISO(day.Date)
		if iso >= minDate && iso <= maxDate {
			filtered = append(filtered, day)
		}
	}
	return filtered
}

func (s *HistoryStore) persistLocked(ctx context.Context) {
	s.storage.Save(ctx, domain.HistoryKey, s.history)
}

func sortDates(dates []string) {
	type sortKey struct {
		valid bool
		key   string
	}
	keys := make(map[string]sortKey, len(dates))
	for _, d := range dates {
		_, err := domain.ParseDisplayDate(d)
		if err == nil {
			keys[d] = sortKey{valid: true, key: domain.DisplayToISO(d)}
		} else {
			keys[d] = sortKey{key: d}
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		a, b := keys[dates[i]], keys[dates[j]]
		if a.valid != b.valid {
			return a.valid
		}
		return a.key < b.key
	})
}

// normalizeDay enforces the per-day invariants on loaded data: one entry per
// name (first wins) and a derived completion flag.
func normalizeDay(entries []domain.HabitEntry) []domain.HabitEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]domain.HabitEntry, 0, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		e.Recompute()
		out = append(out, e)
	}
	return out
}
