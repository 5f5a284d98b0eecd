package pricing

import "github.com/shopspring/decimal"

// Line describes a cart line used for pricing calculation.
type Line struct {
	Quantity        int32
	UnitPrice       decimal.Decimal
	DiscountPercent int32
}

var (
	one  = decimal.New(1, 0)
	half = decimal.New(5, -1)
)

// RoundHalfDown rounds d to the given number of decimal places.
// Exact midpoints round toward zero.
func RoundHalfDown(d decimal.Decimal, places int32) decimal.Decimal {
	shifted := d.Shift(places)
	trunc := shifted.Truncate(0)
	frac := shifted.Sub(trunc).Abs()
	if frac.GreaterThan(half) {
		if d.IsNegative() {
			trunc = trunc.Sub(one)
		} else {
			trunc = trunc.Add(one)
		}
	}
	return trunc.Shift(-places)
}

// PercentageAmount computes percent of price, rounded to two decimal
// places with midpoints going down.
func PercentageAmount(price decimal.Decimal, percent int32) decimal.Decimal {
	if percent == 0 {
		return decimal.Zero
	}
	raw := price.Mul(decimal.NewFromInt32(percent)).Shift(-2)
	return RoundHalfDown(raw, 2)
}

// LineItemPrice computes the payable amount for one cart line: the
// discounted unit price multiplied by quantity.
func LineItemPrice(l Line) decimal.Decimal {
	unit := l.UnitPrice.Sub(PercentageAmount(l.UnitPrice, l.DiscountPercent))
	return unit.Mul(decimal.NewFromInt32(l.Quantity))
}

// CartTotal sums the line item prices of the given lines. Lines with a
// non-positive quantity are skipped.
func CartTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		total = total.Add(LineItemPrice(l))
	}
	return total
}
