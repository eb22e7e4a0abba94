package headhunter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

var areaTree = []Area{
	{ID: "113", Name: "Россия"},
	{ID: "40", Name: "Казахстан", Areas: []Area{
		{ID: "160", Name: "Алматы"},
		{ID: "2173", Name: "Алматинская область"},
		{ID: "159", Name: "Астана"},
	}},
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(zap.NewNop())
	c.APIURL = srv.URL
	return c, srv
}

func TestResolveAreasFindsCityAndCountry(t *testing.T) {
	t.Parallel()

	var calls int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/areas" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(areaTree)
	}))

	ids, err := c.ResolveAreas(context.Background())
	if err != nil {
		t.Fatalf("ResolveAreas: %v", err)
	}
	if ids.Country != "40" {
		t.Fatalf("country id = %q, want 40", ids.Country)
	}
	if len(ids.City) != 2 || ids.City[0] != "160" || ids.City[1] != "2173" {
		t.Fatalf("city ids = %v, want [160 2173]", ids.City)
	}

	// Cached after the first resolution.
	if _, err := c.ResolveAreas(context.Background()); err != nil {
		t.Fatalf("cached ResolveAreas: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("area tree fetched %d times, want 1", got)
	}
}

func TestFetchQueryMapsVacancies(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/vacancies":
			if got := r.URL.Query().Get("per_page"); got != "50" {
				t.Errorf("per_page = %q, want 50", got)
			}
			if got := r.URL.Query().Get("order_by"); got != "publication_time" {
				t.Errorf("order_by = %q", got)
			}
			if r.URL.Query().Get("date_from") == "" {
				t.Error("date_from missing")
			}
			json.NewEncoder(w).Encode(map[string]any{
				"found": 1,
				"pages": 1,
				"page":  0,
				"items": []map[string]any{{
					"id":            "101",
					"name":          "Руководитель склада",
					"area":          map[string]string{"name": "Алматы"},
					"employer":      map[string]string{"name": "ТОО Ромашка"},
					"alternate_url": "https://hh.ru/vacancy/101",
					"published_at":  "2026-08-29T12:00:00+0500",
					"snippet": map[string]string{
						"requirement":    "Опыт работы с WMS",
						"responsibility": "Управление складом",
					},
				}},
			})
		case strings.HasPrefix(r.URL.Path, "/vacancies/"):
			json.NewEncoder(w).Encode(map[string]any{
				"key_skills": []map[string]string{{"name": "WMS"}, {"name": "1C"}},
			})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	items, err := c.FetchQuery(context.Background(), "руководитель склада", AreaIDs{Country: "40", City: []string{"160"}}, 1)
	if err != nil {
		t.Fatalf("FetchQuery: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.Title != "Руководитель склада — ТОО Ромашка — Алматы" {
		t.Fatalf("title = %q", item.Title)
	}
	if item.URL != "https://hh.ru/vacancy/101" {
		t.Fatalf("url = %q", item.URL)
	}
	if item.Source != "hh.ru" {
		t.Fatalf("source = %q", item.Source)
	}
	if item.Summary != "Опыт работы с WMS | Управление складом | WMS, 1C" {
		t.Fatalf("summary = %q", item.Summary)
	}
}

func TestFetchQueryCountryFallback(t *testing.T) {
	t.Parallel()

	var searchedAreas []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vacancies" {
			json.NewEncoder(w).Encode(map[string]any{})
			return
		}
		area := r.URL.Query().Get("area")
		searchedAreas = append(searchedAreas, area)

		items := []map[string]any{}
		if area == "40" {
			items = append(items, map[string]any{
				"id":            "7",
				"name":          "Логист",
				"alternate_url": "https://hh.ru/vacancy/7",
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"found": len(items), "pages": 1, "items": items})
	}))

	items, err := c.FetchQuery(context.Background(), "логист", AreaIDs{Country: "40", City: []string{"160", "2173"}}, 1)
	if err != nil {
		t.Fatalf("FetchQuery: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 from the country fallback", len(items))
	}
	want := []string{"160", "2173", "40"}
	if len(searchedAreas) != len(want) {
		t.Fatalf("searched areas %v, want %v", searchedAreas, want)
	}
	for i := range want {
		if searchedAreas[i] != want[i] {
			t.Fatalf("searched areas %v, want %v", searchedAreas, want)
		}
	}
}

func TestFetchQueryDetailFailureDegrades(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/vacancies":
			json.NewEncoder(w).Encode(map[string]any{
				"found": 1,
				"pages": 1,
				"items": []map[string]any{{
					"id":            "55",
					"name":          "Кладовщик",
					"alternate_url": "https://hh.ru/vacancy/55",
					"snippet":       map[string]string{"requirement": "Опыт"},
				}},
			})
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))

	items, err := c.FetchQuery(context.Background(), "кладовщик", AreaIDs{City: []string{"160"}}, 1)
	if err != nil {
		t.Fatalf("FetchQuery: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 despite the detail failure", len(items))
	}
	if items[0].Summary != "Опыт" {
		t.Fatalf("summary = %q, want the unenriched snippet", items[0].Summary)
	}
}

func TestVacancySummaryEmptyParts(t *testing.T) {
	t.Parallel()

	var v Vacancy
	if got := vacancySummary(v, nil); got != "" {
		t.Fatalf("empty vacancy summary = %q", got)
	}

	v.Snippet.Requirement = "  Опыт  "
	if got := vacancySummary(v, &VacancyDetail{}); got != "Опыт" {
		t.Fatalf("summary = %q", got)
	}
}
