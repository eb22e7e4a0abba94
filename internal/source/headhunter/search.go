package headhunter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/elp-logistics/market-radar/internal/source"
)

// Vacancy is the subset of the hh.ru vacancy payload the radar consumes.
type Vacancy struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Area struct {
		Name string `json:"name"`
	} `json:"area"`
	Employer struct {
		Name string `json:"name"`
	} `json:"employer"`
	Snippet struct {
		Requirement    string `json:"requirement"`
		Responsibility string `json:"responsibility"`
	} `json:"snippet"`
	AlternateURL string `json:"alternate_url"`
	PublishedAt  string `json:"published_at"`
}

// VacancyDetail is the per-vacancy enrichment payload.
type VacancyDetail struct {
	KeySkills []struct {
		Name string `json:"name"`
	} `json:"key_skills"`
}

// searchResponse keeps the paging envelope typed while the items stay
// generic for the decoder below.
type searchResponse struct {
	Items []map[string]any `json:"items"`
	Found int              `json:"found"`
	Pages int              `json:"pages"`
	Page  int              `json:"page"`
}

// decodeVacancies maps raw item payloads onto the Vacancy shape reusing
// its json tags.
func decodeVacancies(raw []map[string]any) ([]Vacancy, error) {
	var vacancies []Vacancy
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &vacancies,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return vacancies, nil
}

// SearchResult is one query+area search outcome.
type SearchResult struct {
	Items []Vacancy
	Found int
}

// Search pages through vacancies for one query in one area, newest
// first, within the trailing 30-day window, until the reported page
// count is exhausted or maxPages is hit.
func (c *Client) Search(ctx context.Context, query, area string, maxPages int) (*SearchResult, error) {
	if maxPages < 1 {
		maxPages = 1
	}
	dateFrom := time.Now().UTC().Add(-searchWindow).Format("2006-01-02")

	result := &SearchResult{}
	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		q.Set("text", query)
		q.Set("area", area)
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("order_by", "publication_time")
		q.Set("search_field", "name,company_name,description")
		q.Set("date_from", dateFrom)

		var resp searchResponse
		if err := c.getJSON(ctx, c.APIURL+"/vacancies", q, &resp); err != nil {
			return nil, err
		}

		vacancies, err := decodeVacancies(resp.Items)
		if err != nil {
			return nil, source.ParseError("decode vacancies", err)
		}

		result.Found = resp.Found
		result.Items = append(result.Items, vacancies...)

		if page >= resp.Pages-1 {
			break
		}
	}
	return result, nil
}

// Detail fetches the enrichment payload for one vacancy. Callers treat
// a failure as "no enrichment", never as a dropped item.
func (c *Client) Detail(ctx context.Context, vacancyID string) (*VacancyDetail, error) {
	if vacancyID == "" {
		return nil, nil
	}
	var detail VacancyDetail
	if err := c.getJSON(ctx, c.APIURL+"/vacancies/"+vacancyID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FetchQuery searches one query over the resolved city areas, falling
// back once to the country id when the cities yield nothing, and maps
// the vacancies to items. Detail fetch failures degrade silently to an
// unenriched summary.
func (c *Client) FetchQuery(ctx context.Context, query string, areas AreaIDs, maxPages int) ([]source.Item, error) {
	var vacancies []Vacancy

	for _, area := range areas.City {
		result, err := c.Search(ctx, query, area, maxPages)
		if err != nil {
			return nil, err
		}
		vacancies = append(vacancies, result.Items...)
	}

	if len(vacancies) == 0 && areas.Country != "" {
		result, err := c.Search(ctx, query, areas.Country, maxPages)
		if err != nil {
			return nil, err
		}
		vacancies = result.Items
	}

	items := make([]source.Item, 0, len(vacancies))
	for _, v := range vacancies {
		detail, err := c.Detail(ctx, v.ID)
		if err != nil {
			c.logger.Debug("vacancy detail fetch failed",
				zap.String("vacancy_id", v.ID),
				zap.Error(err),
			)
			detail = nil
		}
		items = append(items, source.Item{
			Title:     buildTitle(v.Name, v.Employer.Name, v.Area.Name),
			URL:       v.AlternateURL,
			Published: v.PublishedAt,
			Source:    "hh.ru",
			Summary:   vacancySummary(v, detail),
		})
	}
	return items, nil
}

// vacancySummary joins the search snippet with the detail key skills.
func vacancySummary(v Vacancy, detail *VacancyDetail) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{v.Snippet.Requirement, v.Snippet.Responsibility} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if detail != nil {
		skills := make([]string, 0, len(detail.KeySkills))
		for _, skill := range detail.KeySkills {
			if skill.Name != "" {
				skills = append(skills, skill.Name)
			}
		}
		if len(skills) > 0 {
			parts = append(parts, strings.Join(skills, ", "))
		}
	}
	return strings.Join(parts, " | ")
}

func buildTitle(name, company, city string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{name, company, city} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " — ")
}

// String implements a compact debug representation.
func (r *SearchResult) String() string {
	return fmt.Sprintf("found=%d fetched=%d", r.Found, len(r.Items))
}
