package radar

import "fmt"

const maxSampleLinks = 2

// Report is the structured outcome of one scan run: totals, per-source
// breakdowns and the soft errors collected along the way. It only lives
// for the run; nothing here is persisted.
type Report struct {
	Collected int
	NewLeads  int
	Sent      int

	FeedsOK     int
	FeedsFailed int
	EmptyFeeds  int

	RSSNew    int
	SearchNew int
	JobsNew   int
	JobsFound int

	// JobsSkipped explains why the job-board phase did not run, empty
	// when it did.
	JobsSkipped string

	SampleLinks []string
	Errors      []string
}

func (r *Report) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) addSample(url string) {
	if len(r.SampleLinks) < maxSampleLinks {
		r.SampleLinks = append(r.SampleLinks, url)
	}
}

// Summary renders the one-line human answer for an on-demand scan.
func (r *Report) Summary() string {
	return fmt.Sprintf(
		"Сканирование завершено. Собрано: %d, новые лиды: %d, отправлено hot: %d (фиды: %d ok / %d fail)",
		r.Collected, r.NewLeads, r.Sent, r.FeedsOK, r.FeedsFailed,
	)
}
