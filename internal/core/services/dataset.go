package services

import (
	"sort"

	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
)

// Dataset groups every goal-carrying entry into one series per habit name.
// Series appear in the order their habit is first met while walking the
// history chronologically; each point's date is rewritten to YYYY-MM-DD.
// The result is recomputed from the current history on every call.
func (s *HistoryStore) Dataset() []domain.DataSetPrerender {
	return BuildDataset(s.OrderedHistory())
}

func BuildDataset(ordered domain.OrderedHistory) []domain.DataSetPrerender {
	index := make(map[string]int)
	series := make([]domain.DataSetPrerender, 0)

	for _, day := range ordered {
		date := domain.DisplayToISO(day.Date)
		for _, e := range day.Entries {
			if !e.HasGoal() {
				continue
			}

			point := domain.DataPoint{Value: e.Value.Float(), Date: date}

			if i, ok := index[e.Name]; ok {
				series[i].Data = append(series[i].Data, point)
				continue
			}

			index[e.Name] = len(series)
			series = append(series, domain.DataSetPrerender{
				Label:           e.Name,
				Data:            []domain.DataPoint{point},
				BackgroundColor: e.BackgroundColor,
				BorderColor:     e.BorderColor,
				BorderWidth:     e.BorderWidth,
			})
		}
	}

	return series
}

// AlignDatasets puts every series on a shared axis made of the distinct point
// dates within [minDate, maxDate]. Dates a series has no point for get 0.
func AlignDatasets(datasets []domain.DataSetPrerender, minDate, maxDate string) domain.ChartData {
	seen := make(map[string]bool)
	labels := make([]string, 0)
	for _, ds := range datasets {
		for _, p := range ds.Data {
			if seen[p.Date] || p.Date < minDate || p.Date > maxDate {
				continue
			}
			seen[p.Date] = true
			labels = append(labels, p.Date)
		}
	}
	sort.Strings(labels)

	chart := domain.ChartData{
		Labels:   labels,
		Datasets: make([]domain.DataSet, 0, len(datasets)),
	}

	for _, ds := range datasets {
		byDate := make(map[string]float64, len(ds.Data))
		for _, p := range ds.Data {
			if _, ok := byDate[p.Date]; !ok {
				byDate[p.Date] = p.Value
			}
		}

		values := make([]float64, len(labels))
		for i, date := range labels {
			values[i] = byDate[date]
		}

		chart.Datasets = append(chart.Datasets, domain.DataSet{
			Label:           ds.Label,
			Data:            values,
			BackgroundColor: ds.BackgroundColor,
			BorderColor:     ds.BorderColor,
			BorderWidth:     ds.BorderWidth,
		})
	}

	return chart
}
