package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the result of an equal-installment amortization calculation.
// MonthlyPayment is unrounded; presentation rounding belongs to the caller.
type Quote struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// Installment is one period of a repayment schedule, rounded to 2 dp.
type Installment struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// MonthlyQuote computes the fixed monthly payment for a loan using
//
//	r       = annualRatePercent / 100 / 12
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A non-positive principal or term yields a zero Quote: callers must treat it
// as "inputs incomplete", never as a computed payment. TotalPayment is exactly
// MonthlyPayment * termMonths.
func MonthlyQuote(principal decimal.Decimal, annualRatePercent float64, termMonths int) Quote {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return Quote{MonthlyPayment: decimal.Zero, TotalPayment: decimal.Zero, TotalInterest: decimal.Zero}
	}

	termDec := decimal.NewFromInt(int64(termMonths))
	monthlyRate := annualRatePercent / 100.0 / 12.0

	var payment decimal.Decimal
	if monthlyRate == 0 {
		payment = principal.Div(termDec)
	} else {
		// The power term needs float64; monetary arithmetic stays decimal.
		factor := math.Pow(1+monthlyRate, float64(termMonths))
		payment = decimal.NewFromFloat(principal.InexactFloat64() * monthlyRate * factor / (factor - 1))
	}

	total := payment.Mul(termDec)
	interest := total.Sub(principal)
	if interest.IsNegative() {
		// division dust at zero rate, e.g. 100/3*3
		interest = decimal.Zero
	}
	return Quote{MonthlyPayment: payment, TotalPayment: total, TotalInterest: interest}
}

// Schedule expands a quote into per-period installments. Amounts are rounded
// to 2 dp; the last period absorbs rounding drift so the balance closes at
// exactly zero. The first installment falls one month after startDate.
func Schedule(principal decimal.Decimal, annualRatePercent float64, termMonths int, startDate time.Time) []Installment {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthlyRate := annualRatePercent / 100.0 / 12.0
	monthlyRateDec := decimal.NewFromFloat(monthlyRate)
	payment := MonthlyQuote(principal, annualRatePercent, termMonths).MonthlyPayment.Round(2)

	out := make([]Installment, 0, termMonths)
	remaining := principal
	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRateDec).Round(2)
		principalPart := payment.Sub(interest)
		total := payment

		if period == termMonths {
			principalPart = remaining
			total = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		out = append(out, Installment{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            total,
			RemainingBalance: remaining,
		})
	}
	return out
}
