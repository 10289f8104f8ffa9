package gate

// Stats keeps running aggregates over contact strengths. It is a
// diagnostic collaborator of the calling layer, not the gate itself:
// the caller records every strength it computes, accepted or rejected,
// which keeps the gate's rejection paths side-effect-free.
type Stats struct {
	min   float64
	max   float64
	sum   float64
	count int
}

// Record folds one strength sample into the aggregates.
func (s *Stats) Record(strength float64) {
	if s == nil {
		return
	}
	if s.count == 0 || strength < s.min {
		s.min = strength
	}
	if s.count == 0 || strength > s.max {
		s.max = strength
	}
	s.sum += strength
	s.count++
}

// Snapshot returns the current min, max, average, and sample count.
// All zeros before the first sample.
func (s *Stats) Snapshot() (min, max, avg float64, count int) {
	if s == nil || s.count == 0 {
		return 0, 0, 0, 0
	}
	return s.min, s.max, s.sum / float64(s.count), s.count
}

// Reset zeroes the aggregates.
func (s *Stats) Reset() {
	if s == nil {
		return
	}
	*s = Stats{}
}
