package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.005, 1.01},
		{2.675, 2.68},
		{10.0 / 3, 3.33},
		{129.9, 129.9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "in=%v", tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(5, 0, 2))
	assert.Equal(t, 30.0, Percent(30, 100, 1))
	assert.Equal(t, 33.33, Percent(1, 3, 2))
	assert.Equal(t, 66.7, Percent(2, 3, 1))
}
