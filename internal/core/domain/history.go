package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// HistoryKey is the storage key holding the serialized HabitHistory.
const HistoryKey = "history"

var (
	ErrInvalidHistoryData = errors.New("invalid history data")
	ErrHistoryTitleEmpty  = fmt.Errorf("%w: title cannot be empty", ErrInvalidHistoryData)
	ErrHistoryDateInvalid = fmt.Errorf("%w: date must be DD.MM.YYYY", ErrInvalidHistoryData)
	ErrHistoryValueUnset  = fmt.Errorf("%w: value is required", ErrInvalidHistoryData)
)

// HabitHistory maps a DD.MM.YYYY date to the entries recorded that day, in
// creation order.
type HabitHistory map[string][]HabitEntry

func (h HabitHistory) Clone() HabitHistory {
	out := make(HabitHistory, len(h))
	for date, entries := range h {
		out[date] = cloneEntries(entries)
	}
	return out
}

// Entries returns a copy of the entries recorded on date.
func (h HabitHistory) Entries(date string) []HabitEntry {
	entries, ok := h[date]
	if !ok {
		return nil
	}
	return cloneEntries(entries)
}

type HistoryDay struct {
	Date    string       `json:"date" yaml:"date"`
	Entries []HabitEntry `json:"entries" yaml:"entries"`
}

// OrderedHistory is a HabitHistory flattened into ascending date order.
type OrderedHistory []HistoryDay

func (o OrderedHistory) Dates() []string {
	dates := make([]string, 0, len(o))
	for _, d := range o {
		dates = append(dates, d.Date)
	}
	return dates
}

// HistoryData identifies the (date, habit) pair an update applies to.
type HistoryData struct {
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Goal  *float64 `json:"goal,omitempty"`
}

func (d HistoryData) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrHistoryTitleEmpty
	}
	if _, err := ParseDisplayDate(d.Date); err != nil {
		return ErrHistoryDateInvalid
	}
	return nil
}

type DataPoint struct {
	Value float64 `json:"value" yaml:"value"`
	Date  string  `json:"date" yaml:"date"`
}

// DataSetPrerender is one chart-ready series per habit name.
type DataSetPrerender struct {
	Label           string      `json:"label" yaml:"label"`
	Data            []DataPoint `json:"data" yaml:"data"`
	BackgroundColor string      `json:"backgroundColor,omitempty" yaml:"background_color,omitempty"`
	BorderColor     string      `json:"borderColor,omitempty" yaml:"border_color,omitempty"`
	BorderWidth     int         `json:"borderWidth,omitempty" yaml:"border_width,omitempty"`
}

type DataSet struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
}

// ChartData is a set of series aligned on a shared date axis.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []DataSet `json:"datasets"`
}

type HistoryEventType string

const (
	HistoryEventUpdated HistoryEventType = "updated"
	HistoryEventRemoved HistoryEventType = "removed"
	HistoryEventReset   HistoryEventType = "reset"
	HistoryEventLoaded  HistoryEventType = "loaded"
)

// HistoryEvent describes a mutation of a history. Date and Title are empty
// for reset and load events.
type HistoryEvent struct {
	Type  HistoryEventType
	Date  string
	Title string
}

// Storage is the best-effort JSON persistence the history relies on.
// Failures are handled inside the implementation and never reach callers.
type Storage interface {
	// Save serializes value under key. Errors are logged and swallowed.
	Save(ctx context.Context, key string, value any)

	// Load decodes the value stored under key into dst and reports whether
	// it was found. A corrupt value is removed and reported as absent.
	Load(ctx context.Context, key string, dst any) bool
}

// ColorAssigner produces a display color per new habit entry.
// Collisions between calls are acceptable.
type ColorAssigner interface {
	Assign() string
}

func cloneEntries(entries []HabitEntry) []HabitEntry {
	out := make([]HabitEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
