package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPercentageAmountRoundsMidpointDown(t *testing.T) {
	// 50% of 5.55 is 2.775, which must land on 2.77.
	got := PercentageAmount(dec("5.55"), 50)
	if !got.Equal(dec("2.77")) {
		t.Fatalf("expected 2.77, got %s", got)
	}
}

func TestPercentageAmountAboveMidpointRoundsUp(t *testing.T) {
	got := PercentageAmount(dec("5.551"), 50)
	if !got.Equal(dec("2.78")) {
		t.Fatalf("expected 2.78, got %s", got)
	}
}

func TestPercentageAmountZeroPercent(t *testing.T) {
	got := PercentageAmount(dec("99.99"), 0)
	if !got.Equal(decimal.Zero) {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestRoundHalfDownMidpoint(t *testing.T) {
	got := RoundHalfDown(dec("5.005"), 2)
	if !got.Equal(dec("5.00")) {
		t.Fatalf("expected 5.00, got %s", got)
	}
}

func TestRoundHalfDownNegativeMidpoint(t *testing.T) {
	got := RoundHalfDown(dec("-5.005"), 2)
	if !got.Equal(dec("-5.00")) {
		t.Fatalf("expected -5.00, got %s", got)
	}
}

func TestLineItemPriceAppliesDiscountBeforeQuantity(t *testing.T) {
	line := Line{Quantity: 2, UnitPrice: dec("50.00"), DiscountPercent: 50}
	got := LineItemPrice(line)
	if !got.Equal(dec("50.00")) {
		t.Fatalf("expected 50.00, got %s", got)
	}
}

func TestCartTotal(t *testing.T) {
	lines := []Line{
		{Quantity: 2, UnitPrice: dec("50.00"), DiscountPercent: 50},
		{Quantity: 1, UnitPrice: dec("40.00"), DiscountPercent: 10},
	}
	got := CartTotal(lines)
	if !got.Equal(dec("86.00")) {
		t.Fatalf("expected 86.00, got %s", got)
	}
}

func TestCartTotalSkipsNonPositiveQuantity(t *testing.T) {
	lines := []Line{
		{Quantity: 0, UnitPrice: dec("10.00")},
		{Quantity: -1, UnitPrice: dec("10.00")},
		{Quantity: 3, UnitPrice: dec("10.00")},
	}
	got := CartTotal(lines)
	if !got.Equal(dec("30.00")) {
		t.Fatalf("expected 30.00, got %s", got)
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
