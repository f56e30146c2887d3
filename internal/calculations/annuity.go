package calculations

import (
	"time"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// AnnuitySchedule рассчитывает график аннуитетного кредита с фиксированной ставкой
func AnnuitySchedule(terms LoanTerms) (*CalculationResult, error) {
	start, err := utils.ParseDate(terms.StartDate)
	if err != nil {
		return nil, &ValidationError{Field: "start_date", Reason: err.Error()}
	}

	n := terms.TenureMonths
	rate := terms.AnnualRatePercent
	emi := EMI(terms.Principal, rate, n)

	schedule := make([]ScheduleEntry, 0, n)
	remaining := utils.Round2(terms.Principal)
	cumP := 0.0

	for m := 1; m <= n && remaining > 0; m++ {
		split := splitInstallment(remaining, rate, emi, m == n)

		remaining = utils.Round2(remaining - split.principal)
		cumP = utils.Round2(cumP + split.principal)

		schedule = append(schedule, newScheduleEntry(m, periodDate(start, m), split, 0, remaining, cumP, rate))
	}

	return &CalculationResult{
		Summary:  summarize(terms, emi, schedule),
		Schedule: schedule,
	}, nil
}

// periodDate дата периода m (с 1): месяц начала кредита плюс m-1 месяцев
func periodDate(start time.Time, m int) time.Time {
	return utils.AddMonths(start, m-1)
}

func newScheduleEntry(period int, date time.Time, split installment, prepayment, balance, cumulative, rate float64) ScheduleEntry {
	return ScheduleEntry{
		Period:              period,
		Year:                date.Year(),
		Month:               int(date.Month()),
		Date:                utils.FormatDate(date),
		EMI:                 split.paid,
		Interest:            split.interest,
		Principal:           split.principal,
		Prepayment:          prepayment,
		Balance:             balance,
		CumulativePrincipal: cumulative,
		TotalPayment:        utils.Round2(split.paid + prepayment),
		AnnualRatePercent:   rate,
	}
}
