package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-token"), srv
}

func TestFetchHistorical(t *testing.T) {
	var gotPath, gotToken string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("api_token")
		w.Write([]byte(`[{"date":"2024-01-02","close":"10.1"},{"date":"2024-01-03","close":"10.2"}]`))
	})
	defer srv.Close()

	records, err := client.FetchHistorical(context.Background(), "AMD")
	if err != nil {
		t.Fatalf("FetchHistorical() error = %v", err)
	}

	if gotPath != "/eod/AMD.US" {
		t.Errorf("path = %q, want /eod/AMD.US", gotPath)
	}
	if gotToken != "test-token" {
		t.Errorf("api_token = %q, want test-token", gotToken)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestFetchIncremental(t *testing.T) {
	var gotSymbols string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		w.Write([]byte(`[{"code":"AMD"},{"code":"MSFT"}]`))
	})
	defer srv.Close()

	records, err := client.FetchIncremental(context.Background(), []string{"AMD", "MSFT"})
	if err != nil {
		t.Fatalf("FetchIncremental() error = %v", err)
	}

	if gotSymbols != "AMD,MSFT" {
		t.Errorf("symbols = %q, want AMD,MSFT", gotSymbols)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestFetch_HTTPError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	defer srv.Close()

	_, err := client.FetchHistorical(context.Background(), "AMD")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
}

func TestFetch_BadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `<html>maintenance</html>`},
		{"not an array", `{"error":"unknown symbol"}`},
		{"empty array", `[]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			defer srv.Close()

			_, err := client.FetchHistorical(context.Background(), "AMD")
			var payloadErr *PayloadError
			if !errors.As(err, &payloadErr) {
				t.Fatalf("error = %v, want PayloadError", err)
			}
		})
	}
}
