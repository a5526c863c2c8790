package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// APIError represents a transport or HTTP failure from the provider.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eodhd api error %d: %s", e.StatusCode, e.Message)
}

// PayloadError represents a 2xx response whose body does not satisfy the
// fetcher contract (unparsable, not an array, or empty).
type PayloadError struct {
	Subject string // symbol or "bulk"
	Reason  string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("eodhd payload for %s: %s", e.Subject, e.Reason)
}

// FetchHistorical returns the full EOD history for one symbol, in provider
// order.
func (c *Client) FetchHistorical(ctx context.Context, symbol string) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")

	body, err := c.get(ctx, fmt.Sprintf("/eod/%s.US", symbol), query)
	if err != nil {
		return nil, err
	}
	return decodeRecords(symbol, body)
}

// FetchIncremental returns the last trading day's records for the given
// symbols from the bulk endpoint.
func (c *Client) FetchIncremental(ctx context.Context, symbols []string) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("api_token", c.apiKey)
	query.Set("symbols", strings.Join(symbols, ","))
	query.Set("fmt", "json")

	body, err := c.get(ctx, "/eod-bulk-last-day/US", query)
	if err != nil {
		return nil, err
	}
	return decodeRecords("bulk", body)
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// decodeRecords enforces the fetcher contract: the body must be a non-empty
// JSON array. Records are kept raw for the raw zone.
func decodeRecords(subject string, body []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &PayloadError{Subject: subject, Reason: fmt.Sprintf("not a json array: %v", err)}
	}
	if len(records) == 0 {
		return nil, &PayloadError{Subject: subject, Reason: "empty array"}
	}
	return records, nil
}
