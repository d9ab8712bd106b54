package application

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrAmountExceedsLimit = errors.New("requested amount exceeds 80% of asset value")

// maxLoanToValue caps the requested amount at 80% of the declared asset value.
var maxLoanToValue = decimal.New(8, -1)

// MaxLoanAmount returns the largest amount a borrower may request against an
// asset.
func MaxLoanAmount(assetValue float64) decimal.Decimal {
	return decimal.NewFromFloat(assetValue).Mul(maxLoanToValue)
}

// CheckAffordability is the submission precondition: it must pass before any
// record is persisted. Equality with the cap is accepted.
func CheckAffordability(requestedAmount, assetValue float64) error {
	if decimal.NewFromFloat(requestedAmount).GreaterThan(MaxLoanAmount(assetValue)) {
		return ErrAmountExceedsLimit
	}
	return nil
}
