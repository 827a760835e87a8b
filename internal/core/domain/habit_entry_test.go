package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestIsCompleted(t *testing.T) {
	tests := []struct {
		name  string
		value EntryValue
		sum   *float64
		goal  *float64
		want  bool
	}{
		{name: "Boolean true", value: BoolValue(true), want: true},
		{name: "Boolean false", value: BoolValue(false), want: false},
		{name: "Boolean ignores goal", value: BoolValue(false), sum: f(10), goal: f(1), want: false},
		{name: "Numeric sum reaches goal", value: NumberValue(2), sum: f(8), goal: f(8), want: true},
		{name: "Numeric sum above goal", value: NumberValue(1), sum: f(9), goal: f(8), want: true},
		{name: "Numeric sum below goal", value: NumberValue(20), sum: f(2), goal: f(8), want: false},
		{name: "Numeric without sum", value: NumberValue(20), goal: f(8), want: false},
		{name: "Numeric without goal", value: NumberValue(20), sum: f(20), want: false},
		{name: "Unset value", value: EntryValue{}, sum: f(8), goal: f(8), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompleted(tt.value, tt.sum, tt.goal))
		})
	}
}

func TestEntryValue_JSON(t *testing.T) {
	t.Run("Encodes bare values", func(t *testing.T) {
		b, err := json.Marshal(BoolValue(true))
		require.NoError(t, err)
		assert.Equal(t, "true", string(b))

		n, err := json.Marshal(NumberValue(2.5))
		require.NoError(t, err)
		assert.Equal(t, "2.5", string(n))
	})

	t.Run("Decodes booleans and numbers", func(t *testing.T) {
		var v EntryValue
		require.NoError(t, json.Unmarshal([]byte("false"), &v))
		assert.True(t, v.IsBool())
		assert.False(t, v.Bool())

		require.NoError(t, json.Unmarshal([]byte("7"), &v))
		assert.True(t, v.IsNumber())
		assert.Equal(t, 7.0, v.Number())
	})

	t.Run("Rejects strings", func(t *testing.T) {
		var v EntryValue
		assert.ErrorIs(t, json.Unmarshal([]byte(`"7"`), &v), ErrInvalidEntryValue)
	})
}

func TestHabitEntry_UnmarshalRecomputesCompletion(t *testing.T) {
	t.Run("Legacy amount stored in completed", func(t *testing.T) {
		var e HabitEntry
		err := json.Unmarshal([]byte(`{"name":"Water","goal":8,"completed":8,"sum":8}`), &e)

		require.NoError(t, err)
		assert.Equal(t, "Water", e.Name)
		assert.Equal(t, NumberValue(8), e.Value)
		assert.True(t, e.Completed)
		assert.Equal(t, 8.0, *e.Sum)
	})

	t.Run("Legacy amount below goal", func(t *testing.T) {
		var e HabitEntry
		err := json.Unmarshal([]byte(`{"name":"Water","goal":8,"completed":5,"sum":5}`), &e)

		require.NoError(t, err)
		assert.Equal(t, NumberValue(5), e.Value)
		assert.False(t, e.Completed)
	})

	t.Run("Legacy boolean stored in completed", func(t *testing.T) {
		var e HabitEntry
		err := json.Unmarshal([]byte(`{"name":"Read","completed":true}`), &e)

		require.NoError(t, err)
		assert.Equal(t, BoolValue(true), e.Value)
		assert.True(t, e.Completed)
	})

	t.Run("Value wins over completed", func(t *testing.T) {
		var e HabitEntry
		err := json.Unmarshal([]byte(`{"name":"Water","completed":3,"value":2,"goal":8,"sum":8}`), &e)

		require.NoError(t, err)
		assert.Equal(t, NumberValue(2), e.Value)
		assert.True(t, e.Completed)
	})

	t.Run("Stored flag is not trusted", func(t *testing.T) {
		var e HabitEntry
		err := json.Unmarshal([]byte(`{"name":"Read","completed":true,"value":false}`), &e)

		require.NoError(t, err)
		assert.False(t, e.Completed)
	})
}

func TestHabitEntry_Clone(t *testing.T) {
	e := HabitEntry{Name: "Water", Value: NumberValue(1), Goal: f(8), Sum: f(1)}
	c := e.Clone()
	*c.Sum = 5

	assert.Equal(t, 1.0, *e.Sum, "clone must not share pointers")
}

func TestCloneFloat(t *testing.T) {
	assert.Nil(t, CloneFloat(nil))

	orig := f(3)
	c := CloneFloat(orig)
	require.NotNil(t, c)
	*c = 9
	assert.Equal(t, 3.0, *orig)
}
