package calculations

import "github.com/cloud-ru/loan-engine-go/pkg/utils"

// DefaultProjectionCap предел итераций при прогнозе процентов
const DefaultProjectionCap = 1000

// ProjectInterest прогнозирует суммарные проценты до погашения balance
// платежом emi по ставке annualRatePercent. График не сохраняется;
// прогноз останавливается на maxIterations периодах.
func ProjectInterest(balance, annualRatePercent, emi float64, maxIterations int) float64 {
	if maxIterations <= 0 {
		maxIterations = DefaultProjectionCap
	}

	total := 0.0
	remaining := utils.Round2(balance)
	for i := 0; i < maxIterations && remaining > 0; i++ {
		split := splitInstallment(remaining, annualRatePercent, emi, false)
		total = utils.Round2(total + split.interest)
		remaining = utils.Round2(remaining - split.principal)
	}
	return total
}
