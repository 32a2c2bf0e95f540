package panels

import "github.com/roomwaves/roomwaves/internal/model"

// ChartData is a line chart ready for rendering.
type ChartData struct {
	Labels   []float64 `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series of a ChartData.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	Tension         float64   `json:"tension"`
}

// Primary returns the first dataset, or a zero Dataset when there is none.
func (c ChartData) Primary() Dataset {
	if len(c.Datasets) == 0 {
		return Dataset{}
	}
	return c.Datasets[0]
}

func singleSeries(labels, data []float64, label, color string, tension float64) ChartData {
	return ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           label,
			Data:            data,
			BackgroundColor: color,
			BorderColor:     color,
			Tension:         tension,
		}},
	}
}

func seriesChart(label, color string, tension float64) func(model.Series) ChartData {
	return func(s model.Series) ChartData {
		return singleSeries(s.Labels, s.Data, label, color, tension)
	}
}

func frequencyChart(color string) func(model.FrequencyResponse) ChartData {
	return func(fr model.FrequencyResponse) ChartData {
		return singleSeries(fr.Frequencies, fr.Magnitudes, "Frequency Response", color, 0.1)
	}
}

// Reduce decimates a time-frequency map by keeping every factor-th row and
// column. A factor below 2 returns m unchanged.
func Reduce(m model.TimeFrequencyMap, factor int) model.TimeFrequencyMap {
	if factor < 2 {
		return m
	}
	out := model.TimeFrequencyMap{MinDB: m.MinDB, MaxDB: m.MaxDB}
	out.F = stride(m.F, factor)
	out.T = stride(m.T, factor)
	for i := 0; i < len(m.Sxx); i += factor {
		out.Sxx = append(out.Sxx, stride(m.Sxx[i], factor))
	}
	return out
}

func stride(v []float64, step int) []float64 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float64, 0, (len(v)+step-1)/step)
	for i := 0; i < len(v); i += step {
		out = append(out, v[i])
	}
	return out
}
