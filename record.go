package slimline

// Record pairs before/after point counts for one batch operation, one
// entry per processed element in processing order. It is the source of
// all reduction statistics.
type Record struct {
	Original   []int
	Simplified []int
}

func (r *Record) add(original, simplified int) {
	r.Original = append(r.Original, original)
	r.Simplified = append(r.Simplified, simplified)
}

// Len returns the number of processed elements.
func (r *Record) Len() int { return len(r.Original) }

// Removed returns the per-element count of removed points.
func (r *Record) Removed() []int {
	out := make([]int, len(r.Original))
	for i := range r.Original {
		out[i] = r.Original[i] - r.Simplified[i]
	}
	return out
}

// Percents returns the per-element point-reduction fraction,
// 1 - simplified/original. Elements that had no points reduce by zero.
func (r *Record) Percents() []float64 {
	out := make([]float64, len(r.Original))
	for i := range r.Original {
		if r.Original[i] == 0 {
			continue
		}
		out[i] = 1 - float64(r.Simplified[i])/float64(r.Original[i])
	}
	return out
}

// MeanPercent returns the mean reduction fraction across all processed
// elements, zero for an empty record.
func (r *Record) MeanPercent() float64 {
	if len(r.Original) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range r.Percents() {
		sum += p
	}
	return sum / float64(len(r.Original))
}
