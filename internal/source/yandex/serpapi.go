package yandex

import (
	"context"

	"github.com/elp-logistics/market-radar/internal/source"
)

// SerpClient is the alternative search provider slot. It is a stub: the
// provider can be flagged on in config to reserve the budget slot, but
// it contributes no results until a real integration lands.
type SerpClient struct {
	Key string

	enabled bool
}

func NewSerp(enabled bool, key string) *SerpClient {
	return &SerpClient{Key: key, enabled: enabled}
}

func (c *SerpClient) Name() string { return "serpapi" }

func (c *SerpClient) Enabled() bool {
	return c.enabled && c.Key != ""
}

// Fetch returns no items. Kept behaviorally identical to a provider that
// finds nothing so the orchestrator needs no special casing.
func (c *SerpClient) Fetch(_ context.Context, _ string, _ int) ([]source.Item, error) {
	return nil, nil
}
