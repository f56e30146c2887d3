package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// summarize сворачивает график в итоговую сводку.
// Суммы накапливаются в decimal, чтобы итог не зависел от порядка сложения.
func summarize(terms LoanTerms, emi float64, schedule []ScheduleEntry) LoanSummary {
	totalInterest := decimal.Zero
	totalPrepayment := decimal.Zero
	totalOutflow := decimal.Zero
	for _, e := range schedule {
		totalInterest = totalInterest.Add(decimal.NewFromFloat(e.Interest))
		totalPrepayment = totalPrepayment.Add(decimal.NewFromFloat(e.Prepayment))
		totalOutflow = totalOutflow.Add(decimal.NewFromFloat(e.TotalPayment))
	}

	loanAmount := decimal.NewFromFloat(utils.Round2(terms.Principal))
	totalInterest = totalInterest.Round(2)

	summary := LoanSummary{
		LoanAmount:           loanAmount.InexactFloat64(),
		AnnualRatePercent:    terms.AnnualRatePercent,
		EMI:                  emi,
		TotalInterestPayable: totalInterest.InexactFloat64(),
		TotalAmountPayable:   loanAmount.Add(totalInterest).Round(2).InexactFloat64(),
		TotalOutflow:         totalOutflow.Round(2).InexactFloat64(),
		TotalPayments:        len(schedule),
		TotalPrepayment:      totalPrepayment.Round(2).InexactFloat64(),
		FinalRatePercent:     terms.AnnualRatePercent,
		FinalEMI:             emi,
	}

	if len(schedule) > 0 {
		last := schedule[len(schedule)-1]
		summary.LastPaymentDate = last.Date
		summary.FinalRatePercent = last.AnnualRatePercent
	}

	return summary
}
