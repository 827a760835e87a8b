package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
)

type HistoryProvider interface {
	Store(ctx context.Context, userID string) (*HistoryStore, error)
}

type StreakReader interface {
	Streaks(userID string) map[string]domain.Streak
}

type StatsService struct {
	histories HistoryProvider
	streaks   StreakReader
}

func NewStatsService(histories HistoryProvider, streaks StreakReader) *StatsService {
	return &StatsService{histories: histories, streaks: streaks}
}

// Streaks opens the user's history, so the streak computation has data to
// work on, and returns the current and longest streak per habit.
func (s *StatsService) Streaks(ctx context.Context, userID string) (map[string]domain.Streak, error) {
	if _, err := s.histories.Store(ctx, userID); err != nil {
		return nil, err
	}
	if s.streaks == nil {
		return map[string]domain.Streak{}, nil
	}
	return s.streaks.Streaks(userID), nil
}

// GetRangeStats summarizes every habit recorded between the two dates,
// inclusive. Habits are listed in the order they first appear.
func (s *StatsService) GetRangeStats(ctx context.Context, input domain.StatsInput) (*domain.RangeStats, error) {
	store, err := s.histories.Store(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	startDate := input.StartDate.Truncate(24 * time.Hour)
	endDate := input.EndDate.Truncate(24 * time.Hour)
	from := startDate.Format(domain.ISODateLayout)
	to := endDate.Format(domain.ISODateLayout)

	days := store.FilteredHistoryByDate(from, to)

	type dayRecord struct {
		value     float64
		completed bool
	}
	byHabit := make(map[string]map[string]dayRecord)
	order := make([]string, 0)
	firstSeen := make(map[string]domain.HabitEntry)

	for _, day := range days {
		dateKey := domain.DisplayToISO(day.Date)
		for _, e := range day.Entries {
			if _, ok := byHabit[e.Name]; !ok {
				byHabit[e.Name] = make(map[string]dayRecord)
				order = append(order, e.Name)
				firstSeen[e.Name] = e
			}
			byHabit[e.Name][dateKey] = dayRecord{value: e.Value.Float(), completed: e.Completed}
		}
	}

	stats := &domain.RangeStats{
		StartDate:   from,
		EndDate:     to,
		TotalHabits: len(order),
		HabitStats:  make([]domain.HabitStat, 0, len(order)),
	}

	totalDaysPossible := 0
	totalDaysCompleted := 0

	for _, name := range order {
		first := firstSeen[name]
		hStat := domain.HabitStat{
			Name:          name,
			Color:         first.BackgroundColor,
			Goal:          first.Goal,
			DailyProgress: make([]float64, 0),
		}

		daysInPeriod := 0
		for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
			rec := byHabit[name][current.Format(domain.ISODateLayout)]

			hStat.TotalValue += rec.value
			hStat.DailyProgress = append(hStat.DailyProgress, rec.value)
			if rec.completed {
				hStat.DaysCompleted++
			}
			daysInPeriod++
		}

		if daysInPeriod > 0 {
			hStat.CompletionRate = float64(hStat.DaysCompleted) / float64(daysInPeriod) * 100
		}

		totalDaysPossible += daysInPeriod
		totalDaysCompleted += hStat.DaysCompleted
		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	if totalDaysPossible > 0 {
		stats.OverallRate = float64(totalDaysCompleted) / float64(totalDaysPossible) * 100
	}

	return stats, nil
}
