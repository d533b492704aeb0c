package aggregate

import (
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// ColumnSummary describes one sample column across all clades.
type ColumnSummary struct {
	Sample string
	Clades int
	Total  float64
	Mean   float64
	Median float64
	Max    float64
}

// Summarize computes, for each sample column, the total, mean, median and max
// of the per-clade sums. It returns nil for a table with no clades.
func (t *Table) Summarize() ([]ColumnSummary, error) {
	if len(t.Sums) == 0 {
		return nil, nil
	}

	indices := t.Indices()
	out := make([]ColumnSummary, 0, len(t.Header))
	for col, sample := range t.Header {
		data := make(stats.Float64Data, 0, len(indices))
		for _, g := range indices {
			data = append(data, t.Sums[g][col])
		}

		s := ColumnSummary{Sample: sample, Clades: len(data)}
		var err error
		if s.Total, err = stats.Sum(data); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Mean, err = stats.Mean(data); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Median, err = stats.Median(data); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Max, err = stats.Max(data); err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, s)
	}

	return out, nil
}
