package headhunter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/elp-logistics/market-radar/internal/source"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

// getJSON makes a rate-limited GET request and decodes the JSON body
// into target. Failures come back classified per the source contract.
func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return source.Classify("rate wait", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return source.Classify("build request", err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("hh.ru request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return source.Classify("request", err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return source.ParseError("gzip body", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return source.Classify("read body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return source.StatusError("request", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return source.ParseError("decode body", err)
	}

	return nil
}
