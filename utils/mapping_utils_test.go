package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pizzeria-manager/models"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
		ok   bool
	}{
		{in: "monday", want: time.Monday, ok: true},
		{in: " Sunday ", want: time.Sunday, ok: true},
		{in: "Venerdì", want: time.Friday, ok: true},
		{in: "sabato", want: time.Saturday, ok: true},
		{in: "funday", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseWeekday(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestMapOrderStatusToLabel(t *testing.T) {
	assert.Equal(t, "In consegna", MapOrderStatusToLabel(models.OrderStatusDelivering))
	assert.Equal(t, "weird", MapOrderStatusToLabel(models.OrderStatus("weird")))
}
