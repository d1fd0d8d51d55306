// Package debt builds the month-by-month amortization table of the acquisition
// loan and the annual figures derived from it.
//
// Known edge cases (caller preconditions, not validated here):
//   - IOPeriodYears > LoanTermYears: every month of the term is interest-only
//     and the full loan is reported as balloon.
//   - AmortYears <= 0: there is no amortizing payment; months after the IO
//     period stay interest-only, producing a never-amortizing schedule.
//   - LoanTermYears <= 0: the table is empty and the loan is never serviced.
//   - Negative rates are used as given.
package debt

import (
	"math"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// BalloonThreshold is the ending balance (currency units) above which the
// final month is considered to leave a balloon.
const BalloonThreshold = 1.0

// Month is one row of the amortization table. Month is 1-based.
type Month struct {
	Month         int     `json:"month"`
	Payment       float64 `json:"payment"`
	Interest      float64 `json:"interest"`
	Principal     float64 `json:"principal"`
	EndingBalance float64 `json:"ending_balance"`
	InterestOnly  bool    `json:"interest_only"`
}

// Schedule is the full loan table plus the derived scalars.
type Schedule struct {
	LoanAmount        float64 `json:"loan_amount"`
	Equity            float64 `json:"equity"`
	Months            []Month `json:"months"`
	MonthlyPayment    float64 `json:"monthly_payment"`     // amortizing annuity payment
	MonthlyIOPayment  float64 `json:"monthly_io_payment"`  // interest-only payment on the full loan
	AnnualDebtService float64 `json:"annual_debt_service"` // sum of the first 12 payments
	BalloonPayment    float64 `json:"balloon_payment"`
	HasBalloon        bool    `json:"has_balloon"`
}

// BuildSchedule sizes the loan at ltcPct of projectCost and amortizes it.
// A zero loan (no cost, zero LTC, nil settings) yields an empty schedule with
// the whole cost as equity.
func BuildSchedule(fin *models.FinancingSettings, projectCost float64) Schedule {
	if fin == nil {
		return Schedule{Equity: projectCost, Months: []Month{}}
	}

	loan := projectCost * fin.LTCPct / 100
	s := Schedule{
		LoanAmount: loan,
		Equity:     projectCost - loan,
		Months:     []Month{},
	}
	if loan == 0 {
		s.LoanAmount = 0
		return s
	}

	rate := (fin.InterestRatePct / 100) / 12
	termMonths := fin.LoanTermYears * 12
	ioMonths := fin.IOPeriodYears * 12
	amortMonths := fin.AmortYears * 12

	s.MonthlyIOPayment = loan * rate
	s.MonthlyPayment = annuityPayment(loan, rate, amortMonths)

	balance := loan
	for m := 1; m <= termMonths; m++ {
		row := Month{Month: m}

		switch {
		case m <= ioMonths || amortMonths <= 0:
			row.Interest = balance * rate
			row.Payment = row.Interest
			row.InterestOnly = true

		case m <= ioMonths+amortMonths && balance > 0:
			row.Interest = balance * rate
			principal := s.MonthlyPayment - row.Interest
			if principal > balance {
				principal = balance
			}
			row.Principal = principal
			row.Payment = row.Interest + principal
			balance -= principal
			if balance < 0 {
				balance = 0
			}

		default:
			// Retired (or past the amortization period): nothing due.
		}

		row.Payment = calc.Finite(row.Payment)
		row.Interest = calc.Finite(row.Interest)
		row.Principal = calc.Finite(row.Principal)
		row.EndingBalance = calc.Finite(balance)
		s.Months = append(s.Months, row)
	}

	for i := 0; i < len(s.Months) && i < 12; i++ {
		s.AnnualDebtService += s.Months[i].Payment
	}

	if n := len(s.Months); n > 0 {
		last := s.Months[n-1].EndingBalance
		if last > BalloonThreshold {
			s.HasBalloon = true
			s.BalloonPayment = last
		}
	}
	return s
}

// annuityPayment is the level payment retiring principal over n months at
// monthly rate i. A zero rate falls back to straight-line principal.
func annuityPayment(principal, i float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if i == 0 {
		return principal / float64(n)
	}
	factor := math.Pow(1+i, float64(n))
	return calc.Finite(principal * i * factor / (factor - 1))
}
