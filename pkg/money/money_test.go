package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDiv(t *testing.T) {
	amount := decimal.RequireFromString("10.00")

	share, err := Div(amount, 4)
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if want := decimal.RequireFromString("2.50"); !share.Equal(want) {
		t.Errorf("Div(10, 4) = %s, want %s", share, want)
	}

	third, err := Div(amount, 3)
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if got := Display(third); got != "3.33" {
		t.Errorf("Display(10/3) = %s, want 3.33", got)
	}

	if _, err := Div(amount, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div by zero error = %v, want ErrDivisionByZero", err)
	}
}

func TestMul(t *testing.T) {
	got := Mul(decimal.RequireFromString("5.00"), 3)
	if want := decimal.RequireFromString("15.00"); !got.Equal(want) {
		t.Errorf("Mul = %s, want %s", got, want)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pads to two places", "5", "5.00"},
		{"rounds half up", "2.005", "2.01"},
		{"truncates nothing below half", "2.004", "2.00"},
		{"repeating decimal", "3.33333333", "3.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(decimal.RequireFromString(tt.input)); got != tt.want {
				t.Errorf("Display(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromString(t *testing.T) {
	v, err := FromString("12.50")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	if !v.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("FromString = %s, want 12.5", v)
	}

	if _, err := FromString("not-a-number"); err == nil {
		t.Error("FromString accepted garbage input")
	}
}
