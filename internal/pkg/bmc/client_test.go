package bmc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	return &Client{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		PageSize:   50,
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestFetchSupportersEnvelopeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"support_id": 9001, "supporter_email": "a@example.com", "support_coffees": 3, "coffee_price": 5, "support_created_on": "2026-08-01 10:00:00", "support_note": "fp-abc123"}
			],
			"pagination": {"has_next_page": true}
		}`))
	}))
	defer server.Close()

	page, err := testClient(server.URL).FetchSupporters(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.NextPage)
	require.Len(t, page.Supporters, 1)

	sup := page.Supporters[0]
	assert.Equal(t, "9001", sup.ID)
	assert.Equal(t, "a@example.com", sup.Email)
	assert.Equal(t, 15.0, sup.Amount)
	assert.Equal(t, "fp-abc123", sup.Note)
	require.NotNil(t, sup.OccurredAt)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), *sup.OccurredAt)
}

func TestFetchSupportersBareArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "s-1", "email": "b@example.com", "amount": 9.5}]`))
	}))
	defer server.Close()

	page, err := testClient(server.URL).FetchSupporters(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, page.NextPage)
	require.Len(t, page.Supporters, 1)
	assert.Equal(t, "s-1", page.Supporters[0].ID)
	assert.Equal(t, 9.5, page.Supporters[0].Amount)
}

func TestFetchSupportersFallsBackToAPIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	page, err := testClient(server.URL).FetchSupporters(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Supporters)
}

func TestFetchSupportersAllCandidatesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchSupporters(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
}

func TestFetchSupportersRequiresAPIKey(t *testing.T) {
	c := testClient("http://127.0.0.1:0")
	c.APIKey = "  "
	_, err := c.FetchSupporters(context.Background(), 1)
	require.Error(t, err)
}

func TestNormalizeSupporterFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Supporter
	}{
		{
			name: "payment id and payer fields",
			raw:  `{"payment_id": "p-7", "payer_email": "p@example.com", "payer_name": "Pat", "support_amount": 3, "currency": "EUR"}`,
			want: Supporter{ID: "p-7", Email: "p@example.com", Name: "Pat", Amount: 3, Currency: "EUR"},
		},
		{
			name: "string amounts",
			raw:  `{"id": "s-2", "support_coffees": "2", "coffee_price": "4.50"}`,
			want: Supporter{ID: "s-2", Amount: 9},
		},
		{
			name: "non-string note keeps json rendering",
			raw:  `{"id": "s-3", "message": {"text": "hi"}}`,
			want: Supporter{ID: "s-3", Note: `{"text":"hi"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeSupporter([]byte(tt.raw))
			got.Raw = ""
			got.OccurredAt = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOccurredAtLayouts(t *testing.T) {
	for _, s := range []string{
		"2026-08-01T10:00:00Z",
		"2026-08-01T10:00:00",
		"2026-08-01 10:00:00",
	} {
		got := parseOccurredAt(s)
		require.NotNil(t, got, s)
		assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), *got)
	}
	assert.Nil(t, parseOccurredAt(""))
	assert.Nil(t, parseOccurredAt("yesterday"))
}
