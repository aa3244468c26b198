package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandard(t *testing.T) {
	reg := NewRegistry(Standard())
	when := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		helper string
		args   []any
		want   any
	}{
		{"upper", "upper", []any{"ada"}, "ADA"},
		{"lower", "lower", []any{"ADA"}, "ada"},
		{"trim", "trim", []any{"  ada "}, "ada"},
		{"join strings", "join", []any{[]string{"a", "b"}, ", "}, "a, b"},
		{"join any", "join", []any{[]any{1, "x"}, "-"}, "1-x"},
		{"default empty", "default", []any{"", "N/A"}, "N/A"},
		{"default nil", "default", []any{nil, "N/A"}, "N/A"},
		{"default set", "default", []any{"v", "N/A"}, "v"},
		{"default zero int kept", "default", []any{0, 5}, 0},
		{"escape", "escape", []any{"<b>&"}, "&lt;b&gt;&amp;"},
		{"date", "date", []any{"2006-01-02", when}, "2024-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Invoke(tt.helper, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandard_ArgumentErrors(t *testing.T) {
	reg := NewRegistry(Standard())

	_, err := reg.Invoke("upper")
	assert.Error(t, err)

	_, err = reg.Invoke("join", []string{"a"})
	assert.Error(t, err)

	_, err = reg.Invoke("date", "2006", "not-a-time")
	assert.Error(t, err)
}
