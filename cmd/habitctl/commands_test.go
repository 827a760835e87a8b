package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-history/internal/adapters/color"
	"github.com/comitanigiacomo/kanso-history/internal/adapters/storage"
	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
	"github.com/comitanigiacomo/kanso-history/internal/core/services"
)

func memoryOpener(kv storage.KeyValueStore) storeOpener {
	return func(ctx context.Context, userID string) (*services.HistoryStore, func() error, error) {
		backing := storage.NewJSONStorage(storage.Namespace(kv, "users/"+userID+"/"))
		store := services.NewHistoryStore(backing, color.NewRandomAssigner())
		store.LoadHistory(ctx)
		return store, nil, nil
	}
}

func run(t *testing.T, kv storage.KeyValueStore, args ...string) (string, error) {
	t.Helper()
	c := newCLI(memoryOpener(kv))
	defer c.Close()
	cmd := c.rootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseValue(t *testing.T) {
	v, err := parseValue("true")
	require.NoError(t, err)
	assert.True(t, v.IsBool())
	assert.True(t, v.Bool())

	v, err = parseValue("FALSE")
	require.NoError(t, err)
	assert.True(t, v.IsBool())
	assert.False(t, v.Bool())

	v, err = parseValue("2.5")
	require.NoError(t, err)
	assert.True(t, v.IsNumber())
	assert.Equal(t, 2.5, v.Number())

	_, err = parseValue("lots")
	assert.Error(t, err)
}

func TestLog_PersistsAcrossInvocations(t *testing.T) {
	kv := storage.NewMemoryStore()

	out, err := run(t, kv, "log", "Water", "01.03.2024", "3", "--goal", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Water on 01.03.2024: 3 (completed)")

	out, err = run(t, kv, "log", "Read", "02.03.2024", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "not completed")

	out, err = run(t, kv, "dates")
	require.NoError(t, err)
	assert.Equal(t, "01.03.2024\n02.03.2024\n", out)

	out, err = run(t, kv, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "Water")
	assert.Contains(t, out, "Read")
}

func TestLog_SumFlag(t *testing.T) {
	kv := storage.NewMemoryStore()

	out, err := run(t, kv, "log", "Water", "01.03.2024", "1", "--goal", "4", "--sum", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "(completed)")
}

func TestLog_InvalidInput(t *testing.T) {
	kv := storage.NewMemoryStore()

	_, err := run(t, kv, "log", "Water", "2024-03-01", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidHistoryData)

	_, err = run(t, kv, "log", "Water", "01.03.2024", "many")
	assert.Error(t, err)

	_, err = run(t, kv, "log", "Water")
	assert.Error(t, err)
}

func TestUsersAreIsolated(t *testing.T) {
	kv := storage.NewMemoryStore()

	_, err := run(t, kv, "--user", "alice", "log", "Run", "01.03.2024", "true")
	require.NoError(t, err)

	out, err := run(t, kv, "--user", "bob", "dates")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestShow_Range(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := run(t, kv, "log", "Run", "01.03.2024", "true")
	require.NoError(t, err)
	_, err = run(t, kv, "log", "Swim", "10.03.2024", "true")
	require.NoError(t, err)

	out, err := run(t, kv, "show", "--from", "2024-03-05")
	require.NoError(t, err)
	assert.NotContains(t, out, "Run")
	assert.Contains(t, out, "Swim")

	_, err = run(t, kv, "show", "--from", "05.03.2024")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := run(t, kv, "log", "Run", "01.03.2024", "true")
	require.NoError(t, err)

	out, err := run(t, kv, "remove", "01.03.2024", "Run")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Run")

	_, err = run(t, kv, "remove", "01.03.2024", "Run")
	assert.Error(t, err)

	out, err = run(t, kv, "dates")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDatasetAndChart(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := run(t, kv, "log", "Water", "02.03.2024", "2", "--goal", "3")
	require.NoError(t, err)
	_, err = run(t, kv, "log", "Water", "01.03.2024", "1", "--goal", "3")
	require.NoError(t, err)
	_, err = run(t, kv, "log", "Run", "01.03.2024", "true")
	require.NoError(t, err)

	out, err := run(t, kv, "dataset")
	require.NoError(t, err)

	var series []domain.DataSetPrerender
	require.NoError(t, json.Unmarshal([]byte(out), &series))
	require.Len(t, series, 1)
	assert.Equal(t, "Water", series[0].Label)
	require.Len(t, series[0].Data, 2)
	assert.Equal(t, "2024-03-01", series[0].Data[0].Date)
	assert.Equal(t, "2024-03-02", series[0].Data[1].Date)

	out, err = run(t, kv, "chart", "--from", "2024-03-02")
	require.NoError(t, err)

	var chart domain.ChartData
	require.NoError(t, json.Unmarshal([]byte(out), &chart))
	assert.Equal(t, []string{"2024-03-02"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []float64{2}, chart.Datasets[0].Data)
}

func TestChart_RejectsBadBounds(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := run(t, kv, "log", "Water", "01.03.2024", "1", "--goal", "3")
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
	}{
		{"display format from", []string{"chart", "--from", "01.03.2024"}},
		{"garbage to", []string{"chart", "--to", "soon"}},
		{"reversed range", []string{"chart", "--from", "2024-03-05", "--to", "2024-03-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, kv, tt.args...)
			assert.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestReset_RequiresForce(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := run(t, kv, "log", "Run", "01.03.2024", "true")
	require.NoError(t, err)

	_, err = run(t, kv, "reset")
	assert.Error(t, err)

	out, err := run(t, kv, "dates")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = run(t, kv, "reset", "--force")
	require.NoError(t, err)

	out, err = run(t, kv, "dates")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExport(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := run(t, kv, "log", "Run", "01.03.2024", "true")
	require.NoError(t, err)

	out, err := run(t, kv, "export")
	require.NoError(t, err)
	var asJSON domain.HabitHistory
	require.NoError(t, json.Unmarshal([]byte(out), &asJSON))
	require.Len(t, asJSON["01.03.2024"], 1)
	assert.True(t, asJSON["01.03.2024"][0].Completed)

	out, err = run(t, kv, "export", "--format", "yaml")
	require.NoError(t, err)
	var asYAML map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &asYAML))
	require.Len(t, asYAML["01.03.2024"], 1)
	assert.Equal(t, "Run", asYAML["01.03.2024"][0]["name"])
	assert.Equal(t, true, asYAML["01.03.2024"][0]["value"])

	_, err = run(t, kv, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	days := domain.OrderedHistory{
		{Date: "01.03.2024", Entries: []domain.HabitEntry{
			{Name: "Run", Value: domain.BoolValue(true), Completed: true},
			{Name: "Water", Value: domain.NumberValue(2), Goal: func() *float64 { g := 8.0; return &g }()},
		}},
	}

	out := new(bytes.Buffer)
	require.NoError(t, writeTable(out, days))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Contains(t, out.String(), "HABIT")
	var runRow, waterRow string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "Run"):
			runRow = l
		case strings.Contains(l, "Water"):
			waterRow = l
		}
	}
	assert.Contains(t, runRow, "true")
	assert.Contains(t, runRow, "-")
	assert.Contains(t, runRow, "x")
	assert.Contains(t, waterRow, "8")
	assert.NotContains(t, waterRow, " x ")
}
