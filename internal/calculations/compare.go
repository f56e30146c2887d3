package calculations

import (
	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// CompareScenarios сравнивает график без событий с графиком, учитывающим события
func (s *Simulator) CompareScenarios(terms LoanTerms, events Events) (*ComparisonResult, error) {
	baseResult, err := AnnuitySchedule(terms)
	if err != nil {
		return nil, err
	}

	advancedResult, err := s.AdvancedSchedule(terms, events)
	if err != nil {
		return nil, err
	}

	base := baseResult.Summary
	advanced := advancedResult.Summary

	interestSaved := utils.Round2(base.TotalInterestPayable - advanced.TotalInterestPayable)
	monthsSaved := base.TotalPayments - advanced.TotalPayments
	emiDifference := utils.Round2(advanced.FinalEMI - base.EMI)

	var recommendation string
	switch {
	case advanced.Truncated:
		recommendation = "Сценарий не погашает кредит в пределах допустимого срока. Увеличьте платеж или досрочные погашения."
	case interestSaved > 0:
		recommendation = "Изменения уменьшают переплату по процентам."
	case interestSaved < 0:
		recommendation = "Изменения увеличивают переплату по процентам."
	default:
		recommendation = "Изменения не влияют на переплату по процентам."
	}

	return &ComparisonResult{
		Base:           base,
		Advanced:       advanced,
		InterestSaved:  interestSaved,
		MonthsSaved:    monthsSaved,
		EMIDifference:  emiDifference,
		Recommendation: recommendation,
		Impacts:        advancedResult.Impacts,
	}, nil
}
