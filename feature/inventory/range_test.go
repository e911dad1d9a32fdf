package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberRange(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    []string
		wantErr bool
	}{
		{"single number", "42", []string{"042"}, false},
		{"zero padded input", "042", []string{"042"}, false},
		{"range", "1-4", []string{"001", "002", "003", "004"}, false},
		{"range keeps widest padding", "0001-0003", []string{"0001", "0002", "0003"}, false},
		{"mixed list", "3,1-2", []string{"003", "001", "002"}, false},
		{"duplicates collapse", "2,1-3", []string{"002", "001", "003"}, false},
		{"empty", "", nil, true},
		{"descending range", "5-1", nil, true},
		{"garbage", "abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumberRange(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
