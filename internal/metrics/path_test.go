package metrics_test

import (
	"testing"

	"github.com/msomdec/notebook/internal/metrics"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/login", "/login"},
		{"/note/42", "/note/{id}"},
		{"/note/42/edit", "/note/{id}/edit"},
		{"/note/4a2", "/note/4a2"},
	}

	for _, tc := range tests {
		if got := metrics.NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
