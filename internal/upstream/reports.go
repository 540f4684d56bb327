package upstream

import (
	"context"
	"net/http"
	"net/url"
)

// FetchReport performs one generate GET and returns the raw JSON payload for
// shape-based template selection.
func (c *Client) FetchReport(ctx context.Context, token, path string, query url.Values) ([]byte, error) {
	raw, _, err := c.doRaw(ctx, http.MethodGet, path, token, query, nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// DownloadReport fetches the CSV export blob for a report type.
func (c *Client) DownloadReport(ctx context.Context, token, reportType string, query url.Values) ([]byte, string, error) {
	merged := url.Values{}
	for key, values := range query {
		for _, v := range values {
			merged.Add(key, v)
		}
	}
	merged.Set("type", reportType)
	return c.doRaw(ctx, http.MethodGet, "/reports/download", token, merged, nil)
}
