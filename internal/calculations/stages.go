package calculations

import (
	"go.uber.org/zap"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// rateChangeStage применяет изменение ставки, действующее в текущем месяце
func (r *simulationRun) rateChangeStage() error {
	change, ok := r.calendar.rateChangeFor(r.ctx.month)
	if !ok {
		return nil
	}
	ctx := r.ctx

	oldRate, oldEMI := ctx.rate, ctx.emi
	oldTenure := ctx.remainingTenure
	newRate := change.AnnualRatePercent
	newEMI := oldEMI
	var newTenure int

	switch change.Impact {
	case ImpactReduceEMI:
		newEMI = EMI(ctx.balance, newRate, oldTenure)
		newTenure = oldTenure
	default:
		// платеж сохраняется, пока он гасит долг по новой ставке
		if !IsEMISufficient(ctx.balance, newRate, oldEMI) {
			newEMI = MinimumEMI(ctx.balance, newRate)
			r.sim.logger.Debug("emi raised to minimum after rate change",
				zap.String("op", "calculations.rateChangeStage"),
				zap.String("id", change.ID),
				zap.Float64("emi", newEMI),
			)
		}
		newTenure = r.tenureOr(ctx.balance, newRate, newEMI, oldTenure)
	}

	oldInterest := r.project(ctx.balance, oldRate, oldEMI)
	newInterest := r.project(ctx.balance, newRate, newEMI)

	r.ledger.addRateChange(InterestRateChangeImpact{
		ID:             change.ID,
		Date:           utils.FormatDate(ctx.date),
		Impact:         change.Impact,
		OldRate:        oldRate,
		NewRate:        newRate,
		OldEMI:         oldEMI,
		NewEMI:         newEMI,
		TenureChange:   newTenure - oldTenure,
		InterestImpact: utils.Round2(newInterest - oldInterest),
	})

	r.sim.logger.Debug("interest rate change applied",
		zap.String("op", "calculations.rateChangeStage"),
		zap.String("id", change.ID),
		zap.Int("period", ctx.period),
		zap.Float64("rate", newRate),
		zap.Float64("emi", newEMI),
	)

	ctx.rate = newRate
	ctx.emi = newEMI
	ctx.remainingTenure = newTenure
	return nil
}

// emiChangeStage применяет изменение платежа, действующее в текущем месяце
func (r *simulationRun) emiChangeStage() error {
	change, ok := r.calendar.emiChangeFor(r.ctx.month)
	if !ok {
		return nil
	}
	ctx := r.ctx

	if !IsEMISufficient(ctx.balance, ctx.rate, change.EMI) {
		return &InsufficientEMIError{
			RecordID:          change.ID,
			Date:              utils.FormatDate(ctx.date),
			Balance:           ctx.balance,
			AnnualRatePercent: ctx.rate,
			EMI:               change.EMI,
			MinimumEMI:        MinimumEMI(ctx.balance, ctx.rate),
		}
	}

	oldEMI := ctx.emi
	oldTenure := ctx.remainingTenure
	newTenure := r.tenureOr(ctx.balance, ctx.rate, change.EMI, oldTenure)

	oldInterest := r.project(ctx.balance, ctx.rate, oldEMI)
	newInterest := r.project(ctx.balance, ctx.rate, change.EMI)

	r.ledger.addEMIChange(EMIChangeImpact{
		ID:             change.ID,
		Date:           utils.FormatDate(ctx.date),
		OldEMI:         oldEMI,
		NewEMI:         change.EMI,
		TenureChange:   newTenure - oldTenure,
		InterestImpact: utils.Round2(newInterest - oldInterest),
	})

	r.sim.logger.Debug("emi change applied",
		zap.String("op", "calculations.emiChangeStage"),
		zap.String("id", change.ID),
		zap.Int("period", ctx.period),
		zap.Float64("emi", change.EMI),
	)

	ctx.emi = change.EMI
	ctx.remainingTenure = newTenure
	return nil
}

// prepaymentStage применяет досрочные погашения месяца к остатку после платежа.
// Возвращает сумму, внесенную в этом месяце.
func (r *simulationRun) prepaymentStage() float64 {
	ctx := r.ctx
	prepaid := 0.0

	for _, p := range r.calendar.prepaymentsFor(ctx.month) {
		if ctx.balance <= 0 {
			break
		}
		amount := utils.Round2(p.Amount)
		if amount > ctx.balance {
			amount = ctx.balance
		}

		before := ctx.balance
		oldEMI := ctx.emi
		oldTenure := r.tenureOr(before, ctx.rate, oldEMI, ctx.remainingTenure)

		ctx.balance = utils.Round2(ctx.balance - amount)
		ctx.cumPrincipal = utils.Round2(ctx.cumPrincipal + amount)
		prepaid = utils.Round2(prepaid + amount)

		newEMI := oldEMI
		newTenure := 0
		monthsReduced := 0
		emiReduced := 0.0

		if ctx.balance > 0 {
			switch p.Impact {
			case ImpactReduceEMI:
				newEMI = min(EMI(ctx.balance, ctx.rate, oldTenure), oldEMI)
				newTenure = oldTenure
				emiReduced = utils.Round2(oldEMI - newEMI)
			default:
				newTenure = r.tenureOr(ctx.balance, ctx.rate, oldEMI, oldTenure)
				monthsReduced = oldTenure - newTenure
			}
		} else if p.Impact != ImpactReduceEMI {
			monthsReduced = oldTenure
		}

		saved := r.project(before, ctx.rate, oldEMI) - r.project(ctx.balance, ctx.rate, newEMI)
		r.ledger.addPrepayment(p, amount, utils.Round2(saved), monthsReduced, emiReduced)

		r.sim.logger.Debug("prepayment applied",
			zap.String("op", "calculations.prepaymentStage"),
			zap.String("id", p.ID),
			zap.Int("period", ctx.period),
			zap.Float64("amount", amount),
			zap.Float64("balance", ctx.balance),
		)

		ctx.emi = newEMI
		ctx.remainingTenure = newTenure
	}

	return prepaid
}
