package procrastination

import "gonum.org/v1/gonum/stat"

// Scaler standardises columns to zero mean and unit variance.
type Scaler struct {
	mean []float64
	std  []float64
}

// FitScaler computes per-column mean and population standard deviation.
// Constant columns get a unit deviation so they scale to zero.
func FitScaler(rows [][]float64) *Scaler {
	if len(rows) == 0 {
		return &Scaler{}
	}

	cols := len(rows[0])
	s := &Scaler{
		mean: make([]float64, cols),
		std:  make([]float64, cols),
	}

	col := make([]float64, len(rows))
	for j := range cols {
		for i, row := range rows {
			col[i] = row[j]
		}
		s.mean[j], s.std[j] = stat.PopMeanStdDev(col, nil)
		if s.std[j] == 0 {
			s.std[j] = 1
		}
	}

	return s
}

// Transform returns scaled copies of rows.
func (s *Scaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			if j < len(s.mean) {
				scaled[j] = (v - s.mean[j]) / s.std[j]
			} else {
				scaled[j] = v
			}
		}
		out[i] = scaled
	}
	return out
}
