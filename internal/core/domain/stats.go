package domain

import "time"

type RangeStats struct {
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	TotalHabits int         `json:"total_habits"`
	OverallRate float64     `json:"overall_completion_rate"`
	HabitStats  []HabitStat `json:"habits"`
}

type HabitStat struct {
	Name           string    `json:"name"`
	Color          string    `json:"color,omitempty"`
	Goal           *float64  `json:"goal,omitempty"`
	TotalValue     float64   `json:"total_value"`
	CompletionRate float64   `json:"completion_rate"`
	DaysCompleted  int       `json:"days_completed"`
	DailyProgress  []float64 `json:"daily_progress"`
}

type StatsInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}

// Streak counts consecutive days on which a habit was completed.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}
