package debt

// AnnualDebt aggregates twelve months of the schedule. Year is 1-based.
type AnnualDebt struct {
	Year          int     `json:"year"`
	Payment       float64 `json:"payment"`
	Interest      float64 `json:"interest"`
	Principal     float64 `json:"principal"`
	EndingBalance float64 `json:"ending_balance"`
}

// Annual rolls the months up into loan years 1..years. Years past the loan
// term report zero flows and the balance left at maturity.
func (s Schedule) Annual(years int) []AnnualDebt {
	out := make([]AnnualDebt, 0, years)
	for y := 1; y <= years; y++ {
		row := AnnualDebt{Year: y, EndingBalance: s.BalanceAfterYear(y)}
		for m := (y - 1) * 12; m < y*12 && m < len(s.Months); m++ {
			row.Payment += s.Months[m].Payment
			row.Interest += s.Months[m].Interest
			row.Principal += s.Months[m].Principal
		}
		out = append(out, row)
	}
	return out
}

// BalanceAfterYear is the outstanding balance at the end of loan year y.
// Year 0 is the drawn amount; years past the term keep the final balance.
func (s Schedule) BalanceAfterYear(y int) float64 {
	if y <= 0 || len(s.Months) == 0 {
		return s.LoanAmount
	}
	idx := y*12 - 1
	if idx >= len(s.Months) {
		idx = len(s.Months) - 1
	}
	return s.Months[idx].EndingBalance
}

// TermYears is the number of loan years covered by the table.
func (s Schedule) TermYears() int {
	return (len(s.Months) + 11) / 12
}
