package models

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{0, "$0.00"},
		{Dollars(45), "$45.00"},
		{Dollars(1200), "$1,200.00"},
		{Money(123456789), "$1,234,567.89"},
		{Money(-1250), "-$12.50"},
		{Dollars(100000), "$100,000.00"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", int64(tt.in), got, tt.want)
		}
	}
}

func TestLineItemAmount(t *testing.T) {
	li := LineItem{Procedure: Procedure{ID: 1, UnitPrice: Dollars(120)}, Quantity: 3}
	if got := li.Amount(); got != Dollars(360) {
		t.Errorf("Amount() = %v, want $360.00", got)
	}
}
