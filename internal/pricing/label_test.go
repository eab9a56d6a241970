package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func TestFormatDiscountHidesNonPositive(t *testing.T) {
	if got := FormatDiscount(decimal.Zero); got != "" {
		t.Fatalf("expected empty string for zero, got %q", got)
	}
	if got := FormatDiscount(decimal.NewFromInt(-5)); got != "" {
		t.Fatalf("expected empty string for negative, got %q", got)
	}
}

func TestFormatDiscountRoundsToNearestInteger(t *testing.T) {
	got := FormatDiscount(decimal.NewFromFloat(99.6))
	if !strings.Contains(got, "100") {
		t.Fatalf("expected rounded 100 in %q", got)
	}
	if !strings.HasPrefix(got, "Rp") {
		t.Fatalf("expected currency prefix in %q", got)
	}
	if !strings.HasSuffix(got, "off") {
		t.Fatalf("expected discount suffix in %q", got)
	}
}

func TestFormatDiscountRoundsHalfAwayFromZero(t *testing.T) {
	got := FormatDiscount(decimal.NewFromFloat(0.5))
	if !strings.Contains(got, "1") {
		t.Fatalf("expected 0.5 to round up, got %q", got)
	}
}

func TestFormatDiscountLocaleGrouping(t *testing.T) {
	f := LabelFormatter{Symbol: "$", Suffix: "off", Lang: language.English}
	if got := f.FormatDiscount(decimal.NewFromInt(2500)); got != "$2,500 off" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestNewLabelFallsBackOnBadLocale(t *testing.T) {
	f := NewLabel("Rp", "off", "!!")
	if f.Lang != DefaultLabel.Lang {
		t.Fatalf("expected default locale, got %v", f.Lang)
	}
}
