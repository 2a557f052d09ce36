package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value form",
			args:    []string{"-r", "results.json", "-x", "1"},
			allowed: []string{"-r"},
			want:    []string{"-r", "results.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-r=results.json", "-a=archive"},
			allowed: []string{"-a"},
			want:    []string{"-a=archive"},
		},
		{
			name:    "positional payload is dropped",
			args:    []string{`{"participants":["a"]}`, "-r", "results.json"},
			allowed: []string{"-r"},
			want:    []string{"-r", "results.json"},
		},
		{
			name:    "subcommand is dropped",
			args:    []string{"maintain", "-a", "archive"},
			allowed: []string{"-a"},
			want:    []string{"-a", "archive"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-r", "results.json"},
			allowed: nil,
			want:    []string{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}
