package result

import "time"

// Summary aggregates the run tally used for progress printing and exit
// decisions.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
	Skipped int
	Elapsed time.Duration
}

// Successful reports whether the run finished without failures or
// errors. Skips do not count against it.
func (s Summary) Successful() bool {
	return s.Failed == 0 && s.Errored == 0
}
