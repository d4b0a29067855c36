package recon

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"shopsync/models"
)

// DefaultCommissionRate applies when a brand has no configured rate.
var DefaultCommissionRate = decimal.NewFromFloat(0.10)

// ErrDataIntegrity marks monetary derivations that cannot be correct:
// negative totals, rates outside [0,1], or earnings below zero. These
// are logged apart from ordinary persistence failures.
var ErrDataIntegrity = errors.New("monetary data integrity violation")

var one = decimal.NewFromInt(1)

// DeriveFinancials splits a gross total into commission and brand
// earnings. Commission is rounded half-up to 2 fractional digits;
// earnings take the remainder so the two always sum back to the total.
func DeriveFinancials(total, rate decimal.Decimal) (commission, earnings decimal.Decimal, err error) {
	if total.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: negative total %s", ErrDataIntegrity, total)
	}
	if rate.IsNegative() || rate.GreaterThan(one) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: commission rate %s outside [0,1]", ErrDataIntegrity, rate)
	}

	commission = total.Mul(rate).Round(2)
	earnings = total.Sub(commission)

	if earnings.IsNegative() || commission.GreaterThan(total) {
		return decimal.Zero, decimal.Zero,
			fmt.Errorf("%w: commission %s exceeds total %s", ErrDataIntegrity, commission, total)
	}
	return commission, earnings, nil
}

// CommissionRateFor resolves the brand's rate, falling back to the
// platform default. The fallback affects money, so it is never silent.
func CommissionRateFor(brand *models.Brand) decimal.Decimal {
	if brand.CommissionRate == nil {
		log.Printf("Brand %d has no commission rate configured, using default %s", brand.ID, DefaultCommissionRate)
		return DefaultCommissionRate
	}
	return *brand.CommissionRate
}
