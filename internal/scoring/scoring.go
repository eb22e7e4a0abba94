package scoring

import "strings"

// Segment tags assigned to leads. Other is the fallback when no rule
// matches.
const (
	SegmentOther = "Other"
)

// SegmentRule binds a segment tag to its keyword list. Rules are checked
// in slice order and the first match wins.
type SegmentRule struct {
	Segment  string
	Keywords []string
}

// TimingRule binds a timing bucket to its keyword list, first match wins.
type TimingRule struct {
	Bucket   string
	Keywords []string
}

// Tables holds every keyword table the scorer consults. Loaded once at
// startup and injected, so tests can swap in small fixtures.
type Tables struct {
	StrongSignals []string
	Regions       []string
	Segments      []SegmentRule
	Timings       []TimingRule
	DefaultTiming string

	// Marker groups, each worth a flat +10 in DemandScore.
	VacancyMarkers []string
	TenderMarkers  []string
	InvestMarkers  []string

	// Job-board specific bonus tables, see VacancyBonus.
	JobStrong      []string
	JobBonusGroups [][]string
}

// Scorer classifies and scores lead text with case-insensitive substring
// matching. It is deterministic and order-sensitive: the first matching
// table entry decides, there is no weighting between rules.
type Scorer struct {
	tables Tables
}

func New(tables Tables) *Scorer {
	return &Scorer{tables: tables}
}

// Default returns a scorer backed by the built-in keyword tables.
func Default() *Scorer {
	return New(DefaultTables())
}

func normalize(title, summary string) string {
	return strings.ToLower(title + " " + summary)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DetectSegment returns the first segment whose keyword list matches the
// normalized title+summary, or Other.
func (s *Scorer) DetectSegment(title, summary string) string {
	text := normalize(title, summary)
	for _, rule := range s.tables.Segments {
		if containsAny(text, rule.Keywords) {
			return rule.Segment
		}
	}
	return SegmentOther
}

// DetectTiming returns the first timing bucket whose keyword list matches,
// or the default bucket.
func (s *Scorer) DetectTiming(title, summary string) string {
	text := normalize(title, summary)
	for _, rule := range s.tables.Timings {
		if containsAny(text, rule.Keywords) {
			return rule.Bucket
		}
	}
	return s.tables.DefaultTiming
}

// DemandScore maps title+summary to a demand confidence in [5, 100].
// Strong-signal matches contribute up to 60; region, vacancy, tender and
// investment markers add a flat 10 each. A zero total is floored to 5 so
// a scanned signal never reports as fully worthless.
func (s *Scorer) DemandScore(title, summary string) int {
	text := normalize(title, summary)

	score := 0
	matches := 0
	for _, kw := range s.tables.StrongSignals {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	if matches > 0 {
		score += min(60, matches*10)
	}

	if containsAny(text, s.tables.Regions) {
		score += 10
	}
	if containsAny(text, s.tables.VacancyMarkers) {
		score += 10
	}
	if containsAny(text, s.tables.TenderMarkers) {
		score += 10
	}
	if containsAny(text, s.tables.InvestMarkers) {
		score += 10
	}

	if score == 0 {
		score = 5
	}
	return min(score, 100)
}

// VacancyBonus is the job-board specific add-on: +20 when any strong
// warehouse keyword matches, +10 per bonus group (WMS, cross-docking,
// fulfillment, inventory, cold storage, pick-and-pack). The caller clamps
// the combined score to 100.
func (s *Scorer) VacancyBonus(text string) int {
	normalized := strings.ToLower(text)
	bonus := 0
	if containsAny(normalized, s.tables.JobStrong) {
		bonus += 20
	}
	for _, group := range s.tables.JobBonusGroups {
		if containsAny(normalized, group) {
			bonus += 10
		}
	}
	return bonus
}

// HasRegion reports whether the text mentions any configured region
// keyword. The orchestrator uses it as one half of the relevance filter.
func (s *Scorer) HasRegion(title, summary string) bool {
	return containsAny(normalize(title, summary), s.tables.Regions)
}

var companyDelimiters = []string{" - ", " | ", " : "}

// GuessCompany extracts a company candidate from a lead title: the part
// before the first " - ", " | " or " : " delimiter, trimmed of
// surrounding quotes.
func GuessCompany(title string) string {
	if title == "" {
		return ""
	}
	candidate := title
	cut := len(title)
	for _, delim := range companyDelimiters {
		if idx := strings.Index(title, delim); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	candidate = title[:cut]
	candidate = strings.TrimSpace(candidate)
	return strings.Trim(candidate, `"“”`)
}
