package telegram

import (
	"strings"
	"testing"

	"github.com/elp-logistics/market-radar/internal/match"
	"github.com/elp-logistics/market-radar/internal/storage"
)

func TestEscapeMarkdown(t *testing.T) {
	t.Parallel()

	got := EscapeMarkdown("a_b*c`d[e]f")
	want := `a\_b\*c\` + "\\`" + `d\[e\]f`
	if got != want {
		t.Fatalf("EscapeMarkdown = %q, want %q", got, want)
	}
	if EscapeMarkdown("") != "" {
		t.Fatal("empty input must stay empty")
	}
}

func TestFormatLead(t *testing.T) {
	t.Parallel()

	lead := storage.Lead{
		Title:        "Открытие РЦ в Алматы",
		URL:          "https://example.kz/news/1",
		Published:    "2026-08-30",
		Source:       "forbes.kz",
		DemandScore:  75,
		Segment:      "Distribution",
		Timing:       "3–12 мес",
		CompanyGuess: "Magnum",
	}

	text := FormatLead(lead)
	for _, fragment := range []string{
		"*Компания:* Magnum",
		"*Demand Score:* 75",
		"*Сегмент:* Distribution",
		"*Тайминг:* 3–12 мес",
		"*Дата/источник:* 2026-08-30 | forbes.kz",
		"*Сигнал:* Открытие РЦ в Алматы",
		"[Ссылка](https://example.kz/news/1)",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("FormatLead missing %q in:\n%s", fragment, text)
		}
	}
}

func TestFormatLeadFallbacks(t *testing.T) {
	t.Parallel()

	text := FormatLead(storage.Lead{URL: "https://example.kz"})
	if !strings.Contains(text, "*Компания:* —") {
		t.Fatalf("missing company fallback in:\n%s", text)
	}
	if !strings.Contains(text, "*Сегмент:* Other") {
		t.Fatalf("missing segment fallback in:\n%s", text)
	}
}

func TestFormatMatch(t *testing.T) {
	t.Parallel()

	text := FormatMatch(1, match.Result{
		Listing: storage.Listing{
			Price:        250000,
			District:     "Алмалинский",
			PropertyType: "квартира",
			Area:         120,
			URL:          "https://example.kz/listing/7",
		},
		Score:   60,
		Reasons: []string{match.ReasonInBudget, match.ReasonDistrict},
	})

	for _, fragment := range []string{
		"1. *Алмалинский*, квартира",
		"120 м²",
		"Цена: 250000 тг, совпадение: 60",
		"(в бюджете, нужный район)",
		"[Объявление](https://example.kz/listing/7)",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("FormatMatch missing %q in:\n%s", fragment, text)
		}
	}
}

func TestFormatMatchOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	text := FormatMatch(2, match.Result{
		Listing: storage.Listing{Price: 180000, District: "Медеуский", PropertyType: "студия"},
	})

	if strings.Contains(text, "м²") {
		t.Fatalf("zero area must be omitted:\n%s", text)
	}
	if strings.Contains(text, "(") {
		t.Fatalf("empty reasons must be omitted:\n%s", text)
	}
	if strings.Contains(text, "Объявление") {
		t.Fatalf("missing url must drop the link line:\n%s", text)
	}
	if !strings.Contains(text, "Цена: 180000 тг, совпадение: 0") {
		t.Fatalf("price/score line missing:\n%s", text)
	}
}
