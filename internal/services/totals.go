package services

import "github.com/shopspring/decimal"

// Line is the part of an invoice item the totals depend on.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Totals are the derived amounts of an invoice.
type Totals struct {
	// Subtotal is the exact sum of quantity*unit price. It is not rounded.
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	// Amounts holds the rounded amount of each line, in input order.
	Amounts []decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Amount is quantity*unit price rounded half away from zero to 2 places.
func Amount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// Subtotal sums the raw products. Summing the rounded amounts instead would
// drift by up to half a cent per line.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return sum
}

// Tax is subtotal*percent/100 rounded to 2 places.
func Tax(subtotal, percent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(percent).Div(hundred).Round(2)
}

// ComputeTotals derives every amount of an invoice from its lines and tax
// percentage. It has no side effects.
func ComputeTotals(lines []Line, taxPercent decimal.Decimal) Totals {
	amounts := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		amounts[i] = Amount(l.Quantity, l.UnitPrice)
	}
	subtotal := Subtotal(lines)
	tax := Tax(subtotal, taxPercent)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Round(2),
		Amounts:  amounts,
	}
}
