// Package match scores stored listings against a tenant profile with an
// auditable weighted point function and ranks the results.
package match

import (
	"sort"
	"strings"

	"github.com/elp-logistics/market-radar/internal/storage"
)

// TopN is the slate size shown to a tenant.
const TopN = 5

// Reason strings surfaced to the tenant next to each score.
const (
	ReasonInBudget   = "в бюджете"
	ReasonNearBudget = "рядом с бюджетом"
	ReasonUnderMax   = "в пределах бюджета"
	ReasonAboveMin   = "не ниже минимального бюджета"
	ReasonDistrict   = "нужный район"
	ReasonType       = "подходящий тип"
	ReasonPetsOK     = "можно с питомцами"
	ReasonNoPets     = "нельзя с питомцами"
	ReasonParking    = "есть парковка"
	ReasonNoParking  = "нет парковки"
	ReasonVerified   = "проверенное объявление"
)

// Result pairs a listing with its score and the reasons behind it.
type Result struct {
	Listing storage.Listing
	Score   int
	Reasons []string
}

// Score rates one listing against the profile. The result is never
// negative: penalties can cancel bonuses but not push below zero.
func Score(p storage.TenantProfile, l storage.Listing) (int, []string) {
	score := 0
	var reasons []string

	score, reasons = priceFit(p, l, score, reasons)

	if matchEitherWay(p.District, l.District) {
		score += 25
		reasons = append(reasons, ReasonDistrict)
	}

	if matchEitherWay(p.PropertyType, l.PropertyType) {
		score += 15
		reasons = append(reasons, ReasonType)
	}

	if p.Pets == storage.AnswerYes {
		if l.PetsAllowed {
			score += 10
			reasons = append(reasons, ReasonPetsOK)
		} else {
			score -= 5
			reasons = append(reasons, ReasonNoPets)
		}
	}

	if p.Parking == storage.AnswerYes {
		if l.Parking {
			score += 10
			reasons = append(reasons, ReasonParking)
		} else {
			score -= 5
			reasons = append(reasons, ReasonNoParking)
		}
	}

	if l.VerifiedAt != "" {
		score += 5
		reasons = append(reasons, ReasonVerified)
	}

	if score < 0 {
		score = 0
	}
	return score, reasons
}

// priceFit applies exactly one price-related branch.
func priceFit(p storage.TenantProfile, l storage.Listing, score int, reasons []string) (int, []string) {
	switch {
	case p.BudgetMin > 0 && p.BudgetMax > 0:
		if l.Price >= p.BudgetMin && l.Price <= p.BudgetMax {
			return score + 35, append(reasons, ReasonInBudget)
		}
		if nearBound(l.Price, p.BudgetMin) || nearBound(l.Price, p.BudgetMax) {
			return score + 15, append(reasons, ReasonNearBudget)
		}
	case p.BudgetMax > 0:
		if l.Price <= p.BudgetMax {
			return score + 30, append(reasons, ReasonUnderMax)
		}
	case p.BudgetMin > 0:
		if l.Price >= p.BudgetMin {
			return score + 20, append(reasons, ReasonAboveMin)
		}
	}
	return score, reasons
}

// nearBound reports whether price is within 10% of the bound.
func nearBound(price, bound int) bool {
	diff := price - bound
	if diff < 0 {
		diff = -diff
	}
	return diff*10 <= bound
}

func matchEitherWay(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Rank scores every listing and returns the top slate by descending
// score. Order among equal scores follows the inventory order.
func Rank(p storage.TenantProfile, listings []storage.Listing) []Result {
	results := make([]Result, 0, len(listings))
	for _, l := range listings {
		score, reasons := Score(p, l)
		results = append(results, Result{Listing: l, Score: score, Reasons: reasons})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > TopN {
		results = results[:TopN]
	}
	return results
}

// HasMatch reports whether the slate contains anything better than a
// zero score. An all-zero slate means "no match" and callers suggest
// relaxing the criteria instead of showing it.
func HasMatch(results []Result) bool {
	for _, r := range results {
		if r.Score > 0 {
			return true
		}
	}
	return false
}
