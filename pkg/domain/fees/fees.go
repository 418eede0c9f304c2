// Package fees computes platform fees on fixed-point decimal amounts.
//
// All three fee-computation sites (payment reconciliation, cashout, expense
// deduction) go through ComputeFee so a given base amount and rate always
// round to the same cent. Rounding is half-up to 2 decimal places.
package fees

import (
	"fmt"

	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// Type is the closed set of fee shapes.
type Type string

const (
	// TypePercentage is a fee computed as a percentage of the base amount.
	TypePercentage Type = "percentage"
	// TypeFlat is a fixed fee independent of the base amount.
	TypeFlat Type = "flat"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeFee returns round(base * ratePercent / 100, 2).
// Invariants enforced:
//   - base must not be negative.
//   - ratePercent must be within [0, 100].
func ComputeFee(base, ratePercent decimal.Decimal) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: base amount must not be negative", domain.ErrValidation)
	}
	if ratePercent.IsNegative() || ratePercent.GreaterThan(oneHundred) {
		return decimal.Zero, fmt.Errorf("%w: rate must be within [0, 100]", domain.ErrValidation)
	}
	return base.Mul(ratePercent).Div(oneHundred).Round(2), nil
}

// Schedule is a tagged fee variant: exactly one of Percent or Flat applies
// depending on Type.
type Schedule struct {
	Type    Type
	Percent decimal.Decimal
	Flat    decimal.Decimal
}

// Percentage builds a percentage schedule.
func Percentage(percent decimal.Decimal) Schedule {
	return Schedule{Type: TypePercentage, Percent: percent}
}

// FlatAmount builds a flat schedule.
func FlatAmount(amount decimal.Decimal) Schedule {
	return Schedule{Type: TypeFlat, Flat: amount}
}

// Apply computes the fee and net share for base under the schedule.
// netAmount = base - feeAmount holds exactly.
func (s Schedule) Apply(base decimal.Decimal) (fee, net decimal.Decimal, err error) {
	switch s.Type {
	case TypePercentage:
		fee, err = ComputeFee(base, s.Percent)
	case TypeFlat:
		if base.IsNegative() {
			err = fmt.Errorf("%w: base amount must not be negative", domain.ErrValidation)
			break
		}
		if s.Flat.IsNegative() || s.Flat.GreaterThan(base) {
			err = fmt.Errorf("%w: flat fee must be within [0, base amount]", domain.ErrValidation)
			break
		}
		fee = s.Flat.Round(2)
	default:
		err = fmt.Errorf("%w: unknown fee type %q", domain.ErrValidation, s.Type)
	}
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return fee, base.Sub(fee), nil
}
