package telegram

import (
	"fmt"
	"strings"

	"github.com/elp-logistics/market-radar/internal/match"
	"github.com/elp-logistics/market-radar/internal/storage"
)

// EscapeMarkdown neutralizes the characters Telegram's legacy Markdown
// parser treats as formatting.
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"`", "\\`",
		"[", "\\[",
		"]", "\\]",
	)
	return replacer.Replace(text)
}

// FormatLead renders the operator-facing lead card.
func FormatLead(lead storage.Lead) string {
	company := lead.CompanyGuess
	if company == "" {
		company = "—"
	}
	segment := lead.Segment
	if segment == "" {
		segment = "Other"
	}

	return fmt.Sprintf(
		"*Компания:* %s\n"+
			"*Demand Score:* %d\n"+
			"*Сегмент:* %s\n"+
			"*Тайминг:* %s\n"+
			"*Дата/источник:* %s | %s\n"+
			"*Сигнал:* %s\n"+
			"[Ссылка](%s)",
		EscapeMarkdown(company),
		lead.DemandScore,
		EscapeMarkdown(segment),
		EscapeMarkdown(lead.Timing),
		EscapeMarkdown(lead.Published),
		EscapeMarkdown(lead.Source),
		EscapeMarkdown(lead.Title),
		lead.URL,
	)
}

// FormatMatch renders one ranked listing for the tenant.
func FormatMatch(rank int, r match.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. *%s*, %s", rank, EscapeMarkdown(r.Listing.District), EscapeMarkdown(r.Listing.PropertyType))
	if r.Listing.Area > 0 {
		fmt.Fprintf(&b, ", %.0f м²", r.Listing.Area)
	}
	fmt.Fprintf(&b, "\nЦена: %d тг, совпадение: %d", r.Listing.Price, r.Score)
	if len(r.Reasons) > 0 {
		fmt.Fprintf(&b, " (%s)", EscapeMarkdown(strings.Join(r.Reasons, ", ")))
	}
	if r.Listing.URL != "" {
		fmt.Fprintf(&b, "\n[Объявление](%s)", r.Listing.URL)
	}
	return b.String()
}
