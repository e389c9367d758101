package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5.435", "5.44"},
		{"5.434", "5.43"},
		{"2.005", "2.01"},
		{"18.8", "18.8"},
		{"0", "0"},
		{"26.6000", "26.6"},
	}

	for _, tt := range tests {
		got := Round2(decimal.RequireFromString(tt.in))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("Round2(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPtrEq(t *testing.T) {
	a := MustParse("1.60")
	b := MustParse("1.6")

	if !PtrEq(nil, nil) {
		t.Fatal("two nils should be equal")
	}
	if PtrEq(Ptr(a), nil) {
		t.Fatal("set vs nil should differ")
	}
	if !PtrEq(Ptr(a), Ptr(b)) {
		t.Fatal("1.60 and 1.6 should compare equal")
	}
}
