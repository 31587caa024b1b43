package display_test

import (
	"testing"

	"go-gin-cinema-booking/internal/display"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 ₫"},
		{900, "900 ₫"},
		{112000, "112.000 ₫"},
		{1250000, "1.250.000 ₫"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, display.FormatCurrency(tt.amount))
	}
}

func TestFormatDiscount(t *testing.T) {
	assert.Equal(t, "-5.000 ₫", display.FormatDiscount(5000))
	assert.Equal(t, "-13.000 ₫", display.FormatDiscount(-13000))
}
