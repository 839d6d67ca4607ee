package drill

// Stats summarizes a run.
type Stats struct {
	// PerfectWords counts words without a wrong attempt.
	PerfectWords int

	// TotalWrongAttempts sums wrong attempts over all words.
	TotalWrongAttempts int

	// WorstWord is the first word with the highest wrong-attempt count.
	// Only meaningful when HasWorst is true.
	WorstWord string

	// HasWorst is false when every word was perfect.
	HasWorst bool
}

// CalcStats scans every word of the run once, left to right. Ties for the
// worst word go to the earliest word.
func CalcStats(s State) Stats {
	var st Stats
	worst := 0
	for w := range s.Words.All() {
		n := s.WrongAttempts[w]
		if n == 0 {
			st.PerfectWords++
		}
		st.TotalWrongAttempts += n
		if n > worst {
			worst = n
			st.WorstWord = w
			st.HasWorst = true
		}
	}
	return st
}
