package workers

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
)

type HistorySource interface {
	OrderedHistory(userID string) (domain.OrderedHistory, bool)
}

// StreakJob asks for the streaks of one habit, or of every habit when Habit
// is empty.
type StreakJob struct {
	UserID string
	Habit  string
}

type StreakWorker struct {
	source HistorySource
	jobs   chan StreakJob
	now    func() time.Time

	mu      sync.RWMutex
	streaks map[string]map[string]domain.Streak
}

func NewStreakWorker(source HistorySource) *StreakWorker {
	return &StreakWorker{
		source:  source,
		jobs:    make(chan StreakJob, 100),
		now:     time.Now,
		streaks: make(map[string]map[string]domain.Streak),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(job)
			case <-ctx.Done():
				log.Println("Streak Worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(userID, habit string) {
	select {
	case w.jobs <- StreakJob{UserID: userID, Habit: habit}:
	default:
		log.Printf("Streak Worker queue full! Dropping job for %s/%q", userID, habit)
	}
}

// HandleEvent schedules the recomputation a history change calls for.
func (w *StreakWorker) HandleEvent(userID string, ev domain.HistoryEvent) {
	switch ev.Type {
	case domain.HistoryEventUpdated, domain.HistoryEventRemoved:
		w.Enqueue(userID, ev.Title)
	default:
		w.Enqueue(userID, "")
	}
}

// Streaks returns the streaks of the user, keyed by habit. A user never
// seen by the worker is computed on the spot.
func (w *StreakWorker) Streaks(userID string) map[string]domain.Streak {
	if out, ok := w.cached(userID); ok {
		return out
	}

	w.processJob(StreakJob{UserID: userID})
	out, _ := w.cached(userID)
	return out
}

func (w *StreakWorker) cached(userID string) (map[string]domain.Streak, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	user, ok := w.streaks[userID]
	out := make(map[string]domain.Streak, len(user))
	for habit, s := range user {
		out[habit] = s
	}
	return out, ok
}

func (w *StreakWorker) processJob(job StreakJob) {
	ordered, ok := w.source.OrderedHistory(job.UserID)
	if !ok {
		log.Printf("Worker: no open history for user %s, skipping", job.UserID)
		return
	}

	days := completedDays(ordered)
	today := w.now().UTC().Truncate(24 * time.Hour)

	w.mu.Lock()
	defer w.mu.Unlock()

	if job.Habit == "" {
		all := make(map[string]domain.Streak, len(days))
		for habit, dates := range days {
			current, longest := calculateStreaks(dates, today)
			all[habit] = domain.Streak{Current: current, Longest: longest}
		}
		w.streaks[job.UserID] = all
		return
	}

	user, ok := w.streaks[job.UserID]
	if !ok {
		user = make(map[string]domain.Streak)
		w.streaks[job.UserID] = user
	}

	dates, tracked := days[job.Habit]
	if !tracked {
		delete(user, job.Habit)
		return
	}

	current, longest := calculateStreaks(dates, today)
	previous := user[job.Habit]
	user[job.Habit] = domain.Streak{Current: current, Longest: longest}
	if previous.Current != current || previous.Longest != longest {
		log.Printf("Streak updated for %s: Current=%d, Longest=%d", job.Habit, current, longest)
	}
}

// completedDays collects, per habit, the days on which it was completed.
// Habits that appear only as not completed get an empty list.
func completedDays(ordered domain.OrderedHistory) map[string][]time.Time {
	days := make(map[string][]time.Time)
	for _, day := range ordered {
		date, err := domain.ParseDisplayDate(day.Date)
		for _, e := range day.Entries {
			if _, ok := days[e.Name]; !ok {
				days[e.Name] = nil
			}
			if err == nil && e.Completed {
				days[e.Name] = append(days[e.Name], date)
			}
		}
	}
	return days
}

func calculateStreaks(dates []time.Time, today time.Time) (int, int) {
	if len(dates) == 0 {
		return 0, 0
	}

	uniqueDays := make(map[string]bool)
	var sortedDates []time.Time

	for _, d := range dates {
		dateKey := d.UTC().Format(domain.ISODateLayout)
		if !uniqueDays[dateKey] {
			uniqueDays[dateKey] = true
			t, _ := time.Parse(domain.ISODateLayout, dateKey)
			sortedDates = append(sortedDates, t)
		}
	}

	sort.Slice(sortedDates, func(i, j int) bool {
		return sortedDates[i].After(sortedDates[j])
	})

	currentStreak := 0
	diff := today.Sub(sortedDates[0]).Hours() / 24

	if diff <= 1 {
		currentStreak = 1
		for i := 0; i < len(sortedDates)-1; i++ {
			if sortedDates[i].Sub(sortedDates[i+1]).Hours() == 24 {
				currentStreak++
			} else {
				break
			}
		}
	}

	longestStreak := 0
	tempStreak := 1

	for i := 0; i < len(sortedDates)-1; i++ {
		if sortedDates[i].Sub(sortedDates[i+1]).Hours() == 24 {
			tempStreak++
		} else {
			if tempStreak > longestStreak {
				longestStreak = tempStreak
			}
			tempStreak = 1
		}
	}
	if tempStreak > longestStreak {
		longestStreak = tempStreak
	}

	return currentStreak, longestStreak
}
