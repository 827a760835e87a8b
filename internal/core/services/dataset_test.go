package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
	"github.com/comitanigiacomo/kanso-history/internal/core/services"
)

func TestHistoryStore_Dataset(t *testing.T) {
	ctx := context.Background()

	t.Run("Groups entries of one habit into one series", func(t *testing.T) {
		store, _ := newTestStore()
		_, _ = store.UpdateValue(ctx, domain.NumberValue(3), domain.HistoryData{Title: "A", Date: "01.01.2024", Goal: ptr(5.0)}, ptr(3.0))
		_, _ = store.UpdateValue(ctx, domain.NumberValue(5), domain.HistoryData{Title: "A", Date: "02.01.2024", Goal: ptr(5.0)}, ptr(5.0))

		dataset := store.Dataset()

		require.Len(t, dataset, 1)
		assert.Equal(t, "A", dataset[0].Label)
		assert.Equal(t, []domain.DataPoint{
			{Value: 3, Date: "2024-01-01"},
			{Value: 5, Date: "2024-01-02"},
		}, dataset[0].Data)
	})

	t.Run("Skips habits without goal and keeps first-seen order", func(t *testing.T) {
		store, _ := newTestStore()
		_, _ = store.UpdateValue(ctx, domain.BoolValue(true), domain.HistoryData{Title: "Read", Date: "01.01.2024"}, nil)
		_, _ = store.UpdateValue(ctx, domain.NumberValue(1), domain.HistoryData{Title: "Water", Date: "02.01.2024", Goal: ptr(8.0)}, ptr(1.0))
		_, _ = store.UpdateValue(ctx, domain.NumberValue(4), domain.HistoryData{Title: "Steps", Date: "01.01.2024", Goal: ptr(10.0)}, ptr(4.0))
		_, _ = store.UpdateValue(ctx, domain.NumberValue(2), domain.HistoryData{Title: "Water", Date: "01.02.2024", Goal: ptr(8.0)}, ptr(2.0))

		dataset := store.Dataset()

		require.Len(t, dataset, 2)
		assert.Equal(t, "Steps", dataset[0].Label)
		assert.Equal(t, "Water", dataset[1].Label)
		assert.Equal(t, []domain.DataPoint{
			{Value: 1, Date: "2024-01-02"},
			{Value: 2, Date: "2024-02-01"},
		}, dataset[1].Data)
	})

	t.Run("Series reuse the colors of the first entry", func(t *testing.T) {
		store, _ := newTestStore()
		first, _ := store.UpdateValue(ctx, domain.NumberValue(1), domain.HistoryData{Title: "Water", Date: "01.01.2024", Goal: ptr(8.0)}, ptr(1.0))
		_, _ = store.UpdateValue(ctx, domain.NumberValue(1), domain.HistoryData{Title: "Water", Date: "02.01.2024", Goal: ptr(8.0)}, ptr(1.0))

		dataset := store.Dataset()

		require.Len(t, dataset, 1)
		assert.Equal(t, first.BackgroundColor, dataset[0].BackgroundColor)
		assert.Equal(t, first.BorderColor, dataset[0].BorderColor)
		assert.Equal(t, 1, dataset[0].BorderWidth)
	})

	t.Run("Recomputed after removal", func(t *testing.T) {
		store, _ := newTestStore()
		_, _ = store.UpdateValue(ctx, domain.NumberValue(1), domain.HistoryData{Title: "Water", Date: "01.01.2024", Goal: ptr(8.0)}, ptr(1.0))
		require.Len(t, store.Dataset(), 1)

		store.RemoveEntry(ctx, "01.01.2024", "Water")
		assert.Empty(t, store.Dataset())
	})
}

func TestAlignDatasets(t *testing.T) {
	datasets := []domain.DataSetPrerender{
		{
			Label:       "Water",
			Data:        []domain.DataPoint{{Value: 2, Date: "2024-01-01"}, {Value: 6, Date: "2024-01-03"}},
			BorderColor: "#112233",
			BorderWidth: 1,
		},
		{
			Label: "Steps",
			Data:  []domain.DataPoint{{Value: 9, Date: "2024-01-02"}, {Value: 4, Date: "2024-02-10"}},
		},
	}

	chart := services.AlignDatasets(datasets, "2024-01-01", "2024-01-31")

	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, chart.Labels)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, []float64{2, 0, 6}, chart.Datasets[0].Data)
	assert.Equal(t, "#112233", chart.Datasets[0].BorderColor)
	assert.Equal(t, []float64{0, 9, 0}, chart.Datasets[1].Data)

	empty := services.AlignDatasets(datasets, "2030-01-01", "2030-12-31")
	assert.Empty(t, empty.Labels)
	assert.Len(t, empty.Datasets, 2)
	assert.Empty(t, empty.Datasets[0].Data)
}
