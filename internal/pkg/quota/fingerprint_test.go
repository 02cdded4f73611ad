package quota

import "testing"

func TestExtractFingerprint(t *testing.T) {
	tests := []struct {
		note string
		want string
	}{
		{note: "thanks for the app! fp-abc123xyz", want: "fp-abc123xyz"},
		{note: "fp-ABC999 extend me", want: "fp-ABC999"},
		{note: "prefix fp-abc123 suffix fp-def456", want: "fp-abc123"},
		{note: "fp-short", want: ""},
		{note: "no token here", want: ""},
		{note: "", want: ""},
	}

	for _, tt := range tests {
		if got := ExtractFingerprint(tt.note); got != tt.want {
			t.Fatalf("ExtractFingerprint(%q) = %q, want %q", tt.note, got, tt.want)
		}
	}
}
