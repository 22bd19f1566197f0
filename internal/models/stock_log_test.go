package models

import "testing"

func TestStockLogSignedChange(t *testing.T) {
	tests := []struct {
		name   string
		change int
		want   string
	}{
		{name: "increase", change: 3, want: "+3"},
		{name: "decrease", change: -2, want: "-2"},
		{name: "zero", change: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &StockLog{ChangeAmount: tt.change}
			if got := l.SignedChange(); got != tt.want {
				t.Errorf("SignedChange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStockLogConsistent(t *testing.T) {
	ok := &StockLog{BeforeCount: 5, AfterCount: 3, ChangeAmount: -2}
	if !ok.Consistent() {
		t.Error("5 -> 3 with change -2 should be consistent")
	}
	bad := &StockLog{BeforeCount: 5, AfterCount: 3, ChangeAmount: 2}
	if bad.Consistent() {
		t.Error("5 -> 3 with change +2 should not be consistent")
	}
}
