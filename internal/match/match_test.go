package match

import (
	"reflect"
	"testing"

	"github.com/elp-logistics/market-radar/internal/storage"
)

func TestScoreBudgetAndDistrict(t *testing.T) {
	t.Parallel()

	profile := storage.TenantProfile{
		BudgetMin: 200000,
		BudgetMax: 300000,
		District:  "Алматы",
	}
	listing := storage.Listing{
		Price:    250000,
		District: "алматы",
	}

	score, reasons := Score(profile, listing)
	if score != 60 {
		t.Fatalf("score = %d, want 60", score)
	}
	want := []string{ReasonInBudget, ReasonDistrict}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("reasons = %v, want %v", reasons, want)
	}
}

func TestScorePriceBranches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile storage.TenantProfile
		price   int
		want    int
	}{
		{
			name:    "inside both bounds",
			profile: storage.TenantProfile{BudgetMin: 100, BudgetMax: 200},
			price:   150,
			want:    35,
		},
		{
			name:    "near upper bound",
			profile: storage.TenantProfile{BudgetMin: 100, BudgetMax: 200},
			price:   215,
			want:    15,
		},
		{
			name:    "near lower bound",
			profile: storage.TenantProfile{BudgetMin: 100, BudgetMax: 200},
			price:   92,
			want:    15,
		},
		{
			name:    "far outside both bounds",
			profile: storage.TenantProfile{BudgetMin: 100, BudgetMax: 200},
			price:   400,
			want:    0,
		},
		{
			name:    "only max set, under it",
			profile: storage.TenantProfile{BudgetMax: 200},
			price:   150,
			want:    30,
		},
		{
			name:    "only max set, over it",
			profile: storage.TenantProfile{BudgetMax: 200},
			price:   250,
			want:    0,
		},
		{
			name:    "only min set, above it",
			profile: storage.TenantProfile{BudgetMin: 100},
			price:   150,
			want:    20,
		},
		{
			name:    "no budget at all",
			profile: storage.TenantProfile{},
			price:   150,
			want:    0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			score, _ := Score(tt.profile, storage.Listing{Price: tt.price})
			if score != tt.want {
				t.Fatalf("score = %d, want %d", score, tt.want)
			}
		})
	}
}

func TestScorePenaltiesNeverGoNegative(t *testing.T) {
	t.Parallel()

	profile := storage.TenantProfile{
		Pets:    storage.AnswerYes,
		Parking: storage.AnswerYes,
	}
	listing := storage.Listing{Price: 999999}

	score, reasons := Score(profile, listing)
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
	want := []string{ReasonNoPets, ReasonNoParking}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("reasons = %v, want %v", reasons, want)
	}
}

func TestScorePreferenceBonuses(t *testing.T) {
	t.Parallel()

	profile := storage.TenantProfile{
		District:     "Бостандыкский район",
		PropertyType: "квартира",
		Pets:         storage.AnswerYes,
		Parking:      storage.AnswerYes,
	}
	listing := storage.Listing{
		District:     "Бостандыкский",
		PropertyType: "Квартира",
		PetsAllowed:  true,
		Parking:      true,
		VerifiedAt:   "2026-08-01",
	}

	// 25 + 15 + 10 + 10 + 5
	score, _ := Score(profile, listing)
	if score != 65 {
		t.Fatalf("score = %d, want 65", score)
	}
}

func TestRankOrderAndCap(t *testing.T) {
	t.Parallel()

	profile := storage.TenantProfile{BudgetMax: 200}
	listings := []storage.Listing{
		{URL: "a", Price: 500},
		{URL: "b", Price: 150, VerifiedAt: "2026-08-01"},
		{URL: "c", Price: 150},
		{URL: "d", Price: 500},
		{URL: "e", Price: 150},
		{URL: "f", Price: 150},
		{URL: "g", Price: 150},
	}

	results := Rank(profile, listings)
	if len(results) != TopN {
		t.Fatalf("len(results) = %d, want %d", len(results), TopN)
	}
	if results[0].Listing.URL != "b" {
		t.Fatalf("top listing = %q, want %q", results[0].Listing.URL, "b")
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("results not sorted descending at index %d", i)
		}
	}
}

func TestHasMatch(t *testing.T) {
	t.Parallel()

	if HasMatch([]Result{{Score: 0}, {Score: 0}}) {
		t.Fatal("all-zero slate reported a match")
	}
	if !HasMatch([]Result{{Score: 0}, {Score: 5}}) {
		t.Fatal("positive score not reported as a match")
	}
}
