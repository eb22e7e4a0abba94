// Package yandex implements the two interchangeable web-search
// providers: the Yandex XML search API and a SerpAPI placeholder. At
// most one is active per deployment.
package yandex

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/elp-logistics/market-radar/internal/source"
)

const (
	xmlEndpoint      = "https://yandex.com/search/xml"
	defaultUserAgent = "elp-market-radar/1.0 (support@elp-logistics.kz)"
)

// XMLClient queries the keyed Yandex XML search endpoint.
type XMLClient struct {
	User string
	Key  string

	HTTPClient *http.Client
	UserAgent  string
	APIURL     string

	enabled bool
}

func NewXML(enabled bool, user, key string) *XMLClient {
	return &XMLClient{
		User:   user,
		Key:    key,
		APIURL: xmlEndpoint,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		UserAgent: defaultUserAgent,
		enabled:   enabled,
	}
}

func (c *XMLClient) Name() string { return "yandex" }

// Enabled requires both the flag and the credentials.
func (c *XMLClient) Enabled() bool {
	return c.enabled && c.User != "" && c.Key != ""
}

type xmlDoc struct {
	URL      string    `xml:"url"`
	Title    rawText   `xml:"title"`
	Passages []rawText `xml:"passages>passage"`
}

// rawText captures element inner XML so highlight markup inside titles
// and passages can be stripped rather than lost.
type rawText struct {
	Inner string `xml:",innerxml"`
}

type xmlResponse struct {
	Docs []xmlDoc `xml:"response>results>grouping>group>doc"`
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

func flattenXMLText(raw rawText) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(raw.Inner, ""))
}

// Fetch runs one query and returns up to maxResults items. A non-200
// response or a malformed document is a classified error; the caller
// records it and lets the remaining queries run.
func (c *XMLClient) Fetch(ctx context.Context, query string, maxResults int) ([]source.Item, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	q := url.Values{}
	q.Set("user", c.User)
	q.Set("key", c.Key)
	q.Set("query", query)
	q.Set("l10n", "ru")
	q.Set("sortby", "tm.order=descending")
	q.Set("filter", "moderate")
	q.Set("maxpassages", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, source.Classify("build request", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, source.Classify("search request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, source.StatusError("search request", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, source.Classify("read body", err)
	}

	var parsed xmlResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, source.ParseError("decode response", err)
	}

	items := make([]source.Item, 0, maxResults)
	for _, doc := range parsed.Docs {
		if len(items) >= maxResults {
			break
		}
		if doc.URL == "" {
			continue
		}
		passages := make([]string, 0, len(doc.Passages))
		for _, p := range doc.Passages {
			if text := flattenXMLText(p); text != "" {
				passages = append(passages, text)
			}
		}
		items = append(items, source.Item{
			Title:   flattenXMLText(doc.Title),
			URL:     doc.URL,
			Source:  c.Name(),
			Summary: strings.Join(passages, " "),
		})
	}
	return items, nil
}
