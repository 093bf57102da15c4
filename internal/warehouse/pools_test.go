package warehouse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitTypes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"B737-800", []string{"B737-800"}},
		{"B737-800,A320-200", []string{"B737-800", "A320-200"}},
		{" B737-800 , A320-200 ", []string{"B737-800", "A320-200"}},
		{"B737-800,,A320-200", []string{"B737-800", "A320-200"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitTypes(tt.in)); diff != "" {
			t.Errorf("splitTypes(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
