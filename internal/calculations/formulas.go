package calculations

import (
	"math"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// minimumAmortizationShare доля остатка, которую платеж обязан гасить сверх процентов
const minimumAmortizationShare = 0.001

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 1200.0
}

// EMI рассчитывает аннуитетный платеж: P·r·(1+r)^n / ((1+r)^n − 1)
func EMI(principal, annualRatePercent float64, tenureMonths int) float64 {
	if tenureMonths <= 0 {
		return utils.Round2(principal)
	}
	r := monthlyRate(annualRatePercent)
	n := float64(tenureMonths)
	if r == 0 {
		return utils.Round2(principal / n)
	}
	factor := math.Pow(1+r, n)
	return utils.Round2(principal * r * factor / (factor - 1))
}

// TenureFromEMI рассчитывает срок, за который платеж emi погасит principal.
// Возвращает ErrEMICannotAmortize, если платеж не превышает месячные проценты.
func TenureFromEMI(principal, annualRatePercent, emi float64) (int, error) {
	if principal <= 0 {
		return 0, nil
	}
	if emi <= 0 {
		return 0, ErrEMICannotAmortize
	}
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return int(math.Ceil(principal / emi)), nil
	}
	if emi <= principal*r {
		return 0, ErrEMICannotAmortize
	}
	n := math.Round(math.Log(emi/(emi-principal*r)) / math.Log(1+r))
	if !utils.IsFinite(n) {
		return 0, ErrEMICannotAmortize
	}
	// положительный остаток требует хотя бы одного платежа
	if n < 1 {
		return 1, nil
	}
	return int(n), nil
}

// scheduledTenure число платежей emi, после которых от principal остается
// не больше residue. В отличие от TenureFromEMI дробный срок округляется вверх,
// поэтому последний платеж графика не превышает emi больше чем на residue.
func scheduledTenure(principal, annualRatePercent, emi, residue float64) (int, error) {
	if principal <= 0 {
		return 0, nil
	}
	if emi <= 0 {
		return 0, ErrEMICannotAmortize
	}
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		n := int(math.Floor(principal / emi))
		if principal-float64(n)*emi > residue {
			n++
		}
		return max(n, 1), nil
	}
	if emi <= principal*r {
		return 0, ErrEMICannotAmortize
	}
	x := math.Log(emi/(emi-principal*r)) / math.Log(1+r)
	if !utils.IsFinite(x) {
		return 0, ErrEMICannotAmortize
	}
	n := int(math.Floor(x))
	// остаток долга после n полных платежей
	growth := math.Pow(1+r, float64(n))
	if principal*growth-emi*(growth-1)/r > residue {
		n++
	}
	return max(n, 1), nil
}

// MonthlyInterest рассчитывает проценты за месяц на остаток
func MonthlyInterest(balance, annualRatePercent float64) float64 {
	return utils.Round2(balance * monthlyRate(annualRatePercent))
}

// MinimumEMI минимальный допустимый платеж: проценты за месяц плюс 0.1% остатка
func MinimumEMI(balance, annualRatePercent float64) float64 {
	return utils.Round2(MonthlyInterest(balance, annualRatePercent) + balance*minimumAmortizationShare)
}

// IsEMISufficient проверяет, что платеж не ниже минимального
func IsEMISufficient(balance, annualRatePercent, emi float64) bool {
	return emi >= MinimumEMI(balance, annualRatePercent)
}

// installment разбивка одного платежа на проценты и основной долг
type installment struct {
	interest  float64
	principal float64
	paid      float64
}

// splitInstallment делит платеж emi на проценты и основной долг.
// В последнем периоде или когда основной долг превышает остаток,
// гасится ровно остаток, а фактический платеж пересчитывается.
func splitInstallment(balance, annualRatePercent, emi float64, final bool) installment {
	interest := MonthlyInterest(balance, annualRatePercent)
	principal := utils.Round2(emi - interest)
	paid := emi
	if principal < 0 {
		principal = 0
		paid = interest
	}
	if final || principal >= balance {
		principal = balance
		paid = utils.Round2(principal + interest)
	}
	return installment{interest: interest, principal: principal, paid: paid}
}
