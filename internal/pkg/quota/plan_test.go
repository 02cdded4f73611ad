package quota

import (
	"testing"
	"time"
)

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "supporter", want: "supporter"},
		{in: "pro-3mo", want: "pro-3mo"},
		{in: "pro-6mo", want: "pro-6mo"},
		{in: "PRO-6MO", want: "pro-6mo"},
		{in: " pro-3mo ", want: "pro-3mo"},
		{in: "", want: "supporter"},
		{in: "enterprise", want: "supporter"},
	}

	for _, tt := range tests {
		if got := normalizePlan(tt.in); got != tt.want {
			t.Fatalf("normalizePlan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlanDuration(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "supporter", want: 30 * day},
		{in: "pro-3mo", want: 90 * day},
		{in: "pro-6mo", want: 180 * day},
		{in: "unknown", want: 30 * day},
	}

	for _, tt := range tests {
		if got := planDuration(tt.in); got != tt.want {
			t.Fatalf("planDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
