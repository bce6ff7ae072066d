package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrPriceMissing  = errors.New("price is required")
	ErrPriceNegative = errors.New("price must not be negative")
	ErrPriceExceeds  = errors.New("price exceeds the sum of its lines")
)

// Line is one priced line of a bundle: a unit price and how many units.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Amount returns UnitPrice x Quantity.
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Total sums the amount of every line.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount())
	}
	return total
}

// CheckPrice validates a standalone price: present and non-negative.
func CheckPrice(price decimal.NullDecimal) error {
	if !price.Valid {
		return ErrPriceMissing
	}
	if price.Decimal.IsNegative() {
		return fmt.Errorf("%w: %s", ErrPriceNegative, price.Decimal)
	}
	return nil
}

// CheckBundlePrice validates a bundle price against its lines.
// The bundle may be discounted but never marked up:
//
//	price <= sum(line.quantity * line.unitPrice)
//
// It returns the computed total alongside any error.
func CheckBundlePrice(price decimal.NullDecimal, lines []Line) (decimal.Decimal, error) {
	if err := CheckPrice(price); err != nil {
		return decimal.Zero, err
	}
	total := Total(lines)
	if price.Decimal.GreaterThan(total) {
		return total, fmt.Errorf("%w: price %s, total %s", ErrPriceExceeds, price.Decimal, total)
	}
	return total, nil
}
