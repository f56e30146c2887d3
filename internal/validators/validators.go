package validators

import (
	"fmt"
	"time"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(recordID, name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return invalid(recordID, name, "значение не является конечным числом")
	}
	if value < minInclusive {
		return invalid(recordID, name, fmt.Sprintf("значение должно быть ≥ %g", minInclusive))
	}
	if value > maxInclusive {
		return invalid(recordID, name, fmt.Sprintf("значение слишком велико (>%g)", maxInclusive))
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(recordID, name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return invalid(recordID, name, fmt.Sprintf("значение должно быть в диапазоне [%d; %d]", minInclusive, maxInclusive))
	}
	return nil
}

// ValidateDate проверяет формат YYYY-MM-DD и возвращает разобранную дату
func ValidateDate(recordID, name, value string) (time.Time, error) {
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, invalid(recordID, name, err.Error())
	}
	return t, nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("", "principal", principal, 1e-9, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("", "annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckTenure проверяет срок в месяцах
func CheckTenure(cfg *config.Config, months int) error {
	return ValidateIntRange("", "tenure_months", months, 1, cfg.MaxMonths)
}

// CheckLoanTerms проверяет базовые условия кредита
func CheckLoanTerms(cfg *config.Config, terms calculations.LoanTerms) error {
	if err := CheckPrincipal(cfg, terms.Principal); err != nil {
		return err
	}
	if err := CheckRate(cfg, terms.AnnualRatePercent); err != nil {
		return err
	}
	if err := CheckTenure(cfg, terms.TenureMonths); err != nil {
		return err
	}
	_, err := ValidateDate("", "start_date", terms.StartDate)
	return err
}

// CheckImpact проверяет политику влияния
func CheckImpact(recordID string, impact calculations.Impact) error {
	switch impact {
	case calculations.ImpactReduceTenure, calculations.ImpactReduceEMI:
		return nil
	}
	return invalid(recordID, "impact", fmt.Sprintf("недопустимое значение %q", impact))
}

// CheckFrequency проверяет периодичность досрочного погашения
func CheckFrequency(recordID string, frequency calculations.Frequency) error {
	switch frequency {
	case calculations.FrequencyOneTime, calculations.FrequencyMonthly:
		return nil
	}
	return invalid(recordID, "frequency", fmt.Sprintf("недопустимое значение %q", frequency))
}

// CheckPrepayment проверяет досрочное погашение относительно даты начала кредита
func CheckPrepayment(cfg *config.Config, loanStart time.Time, p calculations.Prepayment) error {
	if err := ValidatePositiveNumber(p.ID, "amount", p.Amount, 0.01, cfg.MaxPrincipal); err != nil {
		return err
	}
	if err := CheckFrequency(p.ID, p.Frequency); err != nil {
		return err
	}
	if err := CheckImpact(p.ID, p.Impact); err != nil {
		return err
	}
	start, err := checkNotBeforeLoan(p.ID, "start_date", p.StartDate, loanStart)
	if err != nil {
		return err
	}
	if p.Frequency != calculations.FrequencyMonthly || p.EndDate == "" {
		return nil
	}
	end, err := ValidateDate(p.ID, "end_date", p.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return invalid(p.ID, "end_date", "дата окончания раньше даты начала")
	}
	return nil
}

// CheckInterestRateChange проверяет изменение ставки
func CheckInterestRateChange(cfg *config.Config, loanStart time.Time, c calculations.InterestRateChange) error {
	if err := ValidatePositiveNumber(c.ID, "annual_rate_percent", c.AnnualRatePercent, 0.0, cfg.MaxRate); err != nil {
		return err
	}
	if err := CheckImpact(c.ID, c.Impact); err != nil {
		return err
	}
	_, err := checkNotBeforeLoan(c.ID, "effective_date", c.EffectiveDate, loanStart)
	return err
}

// CheckEMIChange проверяет изменение платежа
func CheckEMIChange(cfg *config.Config, loanStart time.Time, c calculations.EMIChange) error {
	if err := ValidatePositiveNumber(c.ID, "emi", c.EMI, 0.01, cfg.MaxPrincipal); err != nil {
		return err
	}
	_, err := checkNotBeforeLoan(c.ID, "start_date", c.StartDate, loanStart)
	return err
}

// CheckEvents проверяет условия кредита и каждую запись изменений.
// Возвращает первую найденную ошибку.
func CheckEvents(cfg *config.Config, terms calculations.LoanTerms, events calculations.Events) error {
	if err := CheckLoanTerms(cfg, terms); err != nil {
		return err
	}
	loanStart, err := utils.ParseDate(terms.StartDate)
	if err != nil {
		return err
	}

	for _, p := range events.Prepayments {
		if err := CheckPrepayment(cfg, loanStart, p); err != nil {
			return err
		}
	}
	for _, c := range events.InterestRateChanges {
		if err := CheckInterestRateChange(cfg, loanStart, c); err != nil {
			return err
		}
	}
	for _, c := range events.EMIChanges {
		if err := CheckEMIChange(cfg, loanStart, c); err != nil {
			return err
		}
	}
	return nil
}

func checkNotBeforeLoan(recordID, name, value string, loanStart time.Time) (time.Time, error) {
	t, err := ValidateDate(recordID, name, value)
	if err != nil {
		return time.Time{}, err
	}
	if t.Before(loanStart) {
		return time.Time{}, invalid(recordID, name, "дата раньше начала кредита")
	}
	return t, nil
}

func invalid(recordID, field, reason string) error {
	return &calculations.ValidationError{RecordID: recordID, Field: field, Reason: reason}
}
