package rss

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elp-logistics/market-radar/internal/source"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>склад алматы - Google News</title>
    <item>
      <title>Открытие РЦ в Алматы</title>
      <link>https://example.kz/news/1</link>
      <pubDate>Sun, 30 Aug 2026 09:00:00 GMT</pubDate>
      <description>&lt;p&gt;Новый &lt;b&gt;распределительный центр&lt;/b&gt; запущен&lt;/p&gt;</description>
    </item>
    <item>
      <title>Без ссылки</title>
      <description>пропускается</description>
    </item>
  </channel>
</rss>`

func TestFetchParsesFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	items, err := New("", 5*time.Second).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 (link-less entry dropped)", len(items))
	}

	item := items[0]
	if item.URL != "https://example.kz/news/1" {
		t.Fatalf("url = %q", item.URL)
	}
	if item.Source != "склад алматы - Google News" {
		t.Fatalf("source = %q", item.Source)
	}
	if item.Summary != "Новый распределительный центр запущен" {
		t.Fatalf("summary not stripped: %q", item.Summary)
	}
	if item.Published == "" {
		t.Fatal("published date lost")
	}
}

func TestFetchClassifiesBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New("", 5*time.Second).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("404 feed fetch succeeded")
	}

	var srcErr *source.Error
	if !errors.As(err, &srcErr) {
		t.Fatalf("error not classified: %v", err)
	}
	if srcErr.Kind != source.KindStatus {
		t.Fatalf("kind = %q, want %q", srcErr.Kind, source.KindStatus)
	}
}

func TestFetchClassifiesGarbage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("definitely not a feed"))
	}))
	defer srv.Close()

	_, err := New("", 5*time.Second).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("garbage payload parsed as a feed")
	}

	var srcErr *source.Error
	if !errors.As(err, &srcErr) {
		t.Fatalf("error not classified: %v", err)
	}
	if srcErr.Kind != source.KindParse {
		t.Fatalf("kind = %q, want %q", srcErr.Kind, source.KindParse)
	}
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>Первый</p><p>второй</p>", "Первый второй"},
		{"<a href=\"https://x\">ссылка</a>  и   пробелы", "ссылка и пробелы"},
	}

	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Fatalf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildGoogleNewsURL(t *testing.T) {
	t.Parallel()

	u := BuildGoogleNewsURL("аренда склада алматы", "ru", "RU", "RU:ru")
	if !strings.HasPrefix(u, "https://news.google.com/rss/search?") {
		t.Fatalf("unexpected base: %q", u)
	}
	for _, fragment := range []string{"hl=ru", "gl=RU", "ceid=RU:ru"} {
		if !strings.Contains(u, fragment) {
			t.Fatalf("url %q missing %q", u, fragment)
		}
	}
}

func TestAllFeedURLsCoverEveryQuery(t *testing.T) {
	t.Parallel()

	urls := AllFeedURLs()
	want := len(SignalQueriesRU) + len(SignalQueriesEN) + len(OptionalFeeds)
	if len(urls) != want {
		t.Fatalf("got %d feed urls, want %d", len(urls), want)
	}

	unique := make(map[string]bool, len(urls))
	for _, u := range urls {
		if unique[u] {
			t.Fatalf("duplicate feed url %q", u)
		}
		unique[u] = true
	}
}
