package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidEntryValue = errors.New("entry value must be a boolean or a number")
)

type valueKind uint8

const (
	valueUnset valueKind = iota
	valueBool
	valueNumber
)

// EntryValue is the raw value recorded for a habit on a day: either a
// done/not-done flag or an amount logged toward a goal.
type EntryValue struct {
	kind valueKind
	b    bool
	n    float64
}

func BoolValue(b bool) EntryValue {
	return EntryValue{kind: valueBool, b: b}
}

func NumberValue(n float64) EntryValue {
	return EntryValue{kind: valueNumber, n: n}
}

func (v EntryValue) IsBool() bool   { return v.kind == valueBool }
func (v EntryValue) IsNumber() bool { return v.kind == valueNumber }
func (v EntryValue) IsSet() bool    { return v.kind != valueUnset }

func (v EntryValue) Bool() bool { return v.kind == valueBool && v.b }

func (v EntryValue) Number() float64 { return v.n }

// Float reports the value as a chart figure. Booleans count as 1 or 0.
func (v EntryValue) Float() float64 {
	switch v.kind {
	case valueBool:
		if v.b {
			return 1
		}
		return 0
	case valueNumber:
		return v.n
	}
	return 0
}

func (v EntryValue) String() string {
	switch v.kind {
	case valueBool:
		return fmt.Sprintf("%t", v.b)
	case valueNumber:
		return fmt.Sprintf("%g", v.n)
	}
	return "<unset>"
}

func (v EntryValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueBool:
		return json.Marshal(v.b)
	case valueNumber:
		return json.Marshal(v.n)
	}
	return []byte("null"), nil
}

func (v *EntryValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = EntryValue{}
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}

	return ErrInvalidEntryValue
}

func (v EntryValue) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case valueBool:
		return v.b, nil
	case valueNumber:
		return v.n, nil
	}
	return nil, nil
}

// HabitEntry is one habit's recorded state for one calendar day.
type HabitEntry struct {
	Name            string     `json:"name" yaml:"name"`
	Completed       bool       `json:"completed" yaml:"completed"`
	Value           EntryValue `json:"value" yaml:"value"`
	Goal            *float64   `json:"goal,omitempty" yaml:"goal,omitempty"`
	Sum             *float64   `json:"sum,omitempty" yaml:"sum,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty" yaml:"background_color,omitempty"`
	BorderColor     string     `json:"borderColor,omitempty" yaml:"border_color,omitempty"`
	BorderWidth     int        `json:"borderWidth,omitempty" yaml:"border_width,omitempty"`
}

// IsCompleted derives the completion flag of an entry. Numeric habits are
// compared on the cumulative sum, not on the latest value.
func IsCompleted(value EntryValue, sum, goal *float64) bool {
	if value.IsBool() {
		return value.Bool()
	}
	if value.IsNumber() && sum != nil && goal != nil {
		return *sum >= *goal
	}
	return false
}

// HasGoal reports whether the entry carries a non-zero goal.
func (e HabitEntry) HasGoal() bool {
	return e.Goal != nil && *e.Goal != 0
}

func (e *HabitEntry) Recompute() {
	e.Completed = IsCompleted(e.Value, e.Sum, e.Goal)
}

func (e HabitEntry) Clone() HabitEntry {
	c := e
	c.Goal = CloneFloat(e.Goal)
	c.Sum = CloneFloat(e.Sum)
	return c
}

// UnmarshalJSON never trusts the stored completion flag; it is derived from
// value, sum and goal. Older payloads have no value field and keep the
// recorded amount (or done flag) in completed, which then becomes the value.
func (e *HabitEntry) UnmarshalJSON(data []byte) error {
	type alias HabitEntry
	aux := struct {
		*alias
		Completed json.RawMessage `json:"completed"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if !e.Value.IsSet() && len(aux.Completed) > 0 {
		var legacy EntryValue
		if err := legacy.UnmarshalJSON(aux.Completed); err == nil {
			e.Value = legacy
		}
	}

	e.Recompute()
	return nil
}

// CloneFloat copies an optional number so the copy can be mutated freely.
func CloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
