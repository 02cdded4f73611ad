package bmc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/progen-app/progen/internal/pkg/env"
)

const defaultBaseURL = "https://developers.buymeacoffee.com/api/v1"

// Client fetches supporter pages from the Buy Me a Coffee API. The public API
// is loosely specified, so each fetch walks candidate URL and auth-header
// shapes until one answers 2xx; exhausting all combinations is an error.
type Client struct {
	APIKey   string
	BaseURL  string
	PageSize int

	HTTPClient *http.Client
}

// NewClientFromEnv builds a client from BMC_API_KEY, BMC_BASE_URL and
// BMC_PAGE_SIZE.
func NewClientFromEnv() *Client {
	pageSize, err := strconv.Atoi(env.GetEnv("BMC_PAGE_SIZE", "50"))
	if err != nil || pageSize <= 0 {
		pageSize = 50
	}
	return &Client{
		APIKey:   strings.TrimSpace(env.GetEnv("BMC_API_KEY", "")),
		BaseURL:  strings.TrimRight(env.GetEnv("BMC_BASE_URL", defaultBaseURL), "/"),
		PageSize: pageSize,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Supporter is one normalized feed entry. Raw preserves the original payload
// for the append-only audit log.
type Supporter struct {
	ID         string
	OccurredAt *time.Time
	Email      string
	Name       string
	Amount     float64
	Currency   string
	Note       string
	Raw        string
}

// Page is one fetched slice of the feed, newest first. NextPage is 0 on the
// last page.
type Page struct {
	Supporters []Supporter
	NextPage   int
}

// FetchSupporters retrieves one reverse-chronological page of the feed.
func (c *Client) FetchSupporters(ctx context.Context, page int) (*Page, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("BMC_API_KEY is not configured")
	}

	base := strings.TrimRight(c.BaseURL, "/")
	urlCandidates := []string{
		fmt.Sprintf("%s/supporters?page=%d&per_page=%d", base, page, c.PageSize),
		fmt.Sprintf("%s/supporters?page=%d", base, page),
		base + "/supporters",
	}
	headerCandidates := [][2]string{
		{"Authorization", "Bearer " + c.APIKey},
		{"X-Api-Key", c.APIKey},
	}

	var lastErr error
	for _, u := range urlCandidates {
		for _, h := range headerCandidates {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set(h[0], h[1])
			req.Header.Set("Accept", "application/json")

			resp, err := c.HTTPClient.Do(req)
			if err != nil {
				lastErr = err
				continue
			}
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("supporters fetch failed: status=%d", resp.StatusCode)
				continue
			}
			return parsePage(body, page)
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no candidates attempted")
	}
	return nil, fmt.Errorf("could not fetch supporters from any known endpoint/header combination: %w", lastErr)
}

func parsePage(body []byte, page int) (*Page, error) {
	// Two response shapes exist in the wild: a bare array, or a data envelope
	// with pagination info.
	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return &Page{Supporters: normalizeAll(bare)}, nil
	}

	var wrapped struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			HasNextPage bool `json:"has_next_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected supporters payload: %w", err)
	}

	out := &Page{Supporters: normalizeAll(wrapped.Data)}
	if wrapped.Pagination.HasNextPage {
		out.NextPage = page + 1
	}
	return out, nil
}

func normalizeAll(raws []json.RawMessage) []Supporter {
	supporters := make([]Supporter, 0, len(raws))
	for _, raw := range raws {
		supporters = append(supporters, normalizeSupporter(raw))
	}
	return supporters
}

// normalizeSupporter maps the feed's several field-name variants onto one
// record. Unknown shapes degrade to zero values rather than errors; the raw
// payload is always preserved.
func normalizeSupporter(raw json.RawMessage) Supporter {
	var fields map[string]interface{}
	_ = json.Unmarshal(raw, &fields)

	sup := Supporter{Raw: string(raw)}
	sup.ID = firstString(fields, "support_id", "id", "payment_id")
	sup.Email = firstString(fields, "supporter_email", "payer_email", "email")
	sup.Name = firstString(fields, "supporter_name", "payer_name", "name")
	sup.Currency = firstString(fields, "support_currency", "currency", "amount_currency")
	sup.OccurredAt = parseOccurredAt(firstString(fields, "support_created_on", "created_at", "createdOn", "purchase_time"))

	// Coffee count times unit price wins over flat amount fields.
	coffees, okCoffees := asNumber(fields["support_coffees"])
	price, okPrice := asNumber(fields["coffee_price"])
	if okCoffees && okPrice {
		sup.Amount = coffees * price
	} else if amount, ok := asNumber(fields["amount"]); ok {
		sup.Amount = amount
	} else if amount, ok := asNumber(fields["support_amount"]); ok {
		sup.Amount = amount
	}

	sup.Note = noteString(fields, "support_note", "note", "message", "supporter_message")
	return sup
}

func firstString(fields map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func noteString(fields map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString {
			if s != "" {
				return s
			}
			continue
		}
		// Non-string notes are kept as their JSON rendering.
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
	}
	return ""
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

var occurredAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseOccurredAt(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range occurredAtLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}
