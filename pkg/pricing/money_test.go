package pricing_test

import (
	"errors"
	"testing"

	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{"229.90", 22990},
		{"459.80", 45980},
		{"0.01", 1},
		{"0.005", 1}, // округление, не усечение
		{"0.004", 0},
		{"19.999", 2000},
		{"1439.40", 143940},
		{"0", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := pricing.ToMinorUnits(decimal.RequireFromString(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ToMinorUnits(%s) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// Сумма, собранная из float, не должна терять центавы.
func TestToMinorUnits_FloatInputNotTruncated(t *testing.T) {
	got, err := pricing.ToMinorUnits(decimal.NewFromFloat(229.9 * 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 68970 {
		t.Fatalf("want 68970, got %d", got)
	}
}

func TestToMinorUnits_OutOfRange(t *testing.T) {
	_, err := pricing.ToMinorUnits(decimal.RequireFromString("1e30"))
	if !errors.Is(err, pricing.ErrAmountOutOfRange) {
		t.Fatalf("want ErrAmountOutOfRange, got %v", err)
	}
}

func TestFromMinorUnits_RoundTrip(t *testing.T) {
	for _, minor := range []int64{0, 1, 22990, 45980, 143940} {
		back, err := pricing.ToMinorUnits(pricing.FromMinorUnits(minor))
		if err != nil || back != minor {
			t.Fatalf("round trip %d -> %d (err=%v)", minor, back, err)
		}
	}
	if s := pricing.FormatAmount(pricing.FromMinorUnits(22990)); s != "229.90" {
		t.Fatalf("FormatAmount: want 229.90, got %s", s)
	}
}
