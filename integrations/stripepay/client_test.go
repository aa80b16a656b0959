package stripepay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEurosToCents(t *testing.T) {
	cases := []struct {
		amountEUR float64
		want      int64
	}{
		{50, 5000},
		{49.99, 4999}, // la troncature flottante donnerait 4998
		{18, 1800},
		{0.1, 10},
		{320, 32000},
		{73.45, 7345},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, eurosToCents(tc.amountEUR))
	}
}
