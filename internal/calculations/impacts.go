package calculations

import "github.com/cloud-ru/loan-engine-go/pkg/utils"

// impactLedger накапливает эффекты изменений по их идентификаторам
// в порядке первого появления.
type impactLedger struct {
	prepayments     []PrepaymentImpact
	prepaymentIndex map[string]int
	rateChanges     []InterestRateChangeImpact
	rateIndex       map[string]int
	emiChanges      []EMIChangeImpact
	emiIndex        map[string]int
}

func newImpactLedger() *impactLedger {
	return &impactLedger{
		prepaymentIndex: make(map[string]int),
		rateIndex:       make(map[string]int),
		emiIndex:        make(map[string]int),
	}
}

func (l *impactLedger) addPrepayment(p Prepayment, amount, interestSaved float64, monthsReduced int, emiReduced float64) {
	i, ok := l.prepaymentIndex[p.ID]
	if !ok {
		i = len(l.prepayments)
		l.prepaymentIndex[p.ID] = i
		l.prepayments = append(l.prepayments, PrepaymentImpact{ID: p.ID, Impact: p.Impact})
	}
	rec := &l.prepayments[i]
	rec.TotalPrepaymentAmount = utils.Round2(rec.TotalPrepaymentAmount + amount)
	rec.InterestSaved = utils.Round2(rec.InterestSaved + interestSaved)
	rec.MonthsReduced += monthsReduced
	rec.EMIReduced = utils.Round2(rec.EMIReduced + emiReduced)
	rec.Occurrences++
}

func (l *impactLedger) addRateChange(rec InterestRateChangeImpact) {
	if i, ok := l.rateIndex[rec.ID]; ok {
		l.rateChanges[i] = rec
		return
	}
	l.rateIndex[rec.ID] = len(l.rateChanges)
	l.rateChanges = append(l.rateChanges, rec)
}

func (l *impactLedger) addEMIChange(rec EMIChangeImpact) {
	if i, ok := l.emiIndex[rec.ID]; ok {
		l.emiChanges[i] = rec
		return
	}
	l.emiIndex[rec.ID] = len(l.emiChanges)
	l.emiChanges = append(l.emiChanges, rec)
}

func (l *impactLedger) impacts() Impacts {
	out := Impacts{
		Prepayments:         l.prepayments,
		InterestRateChanges: l.rateChanges,
		EMIChanges:          l.emiChanges,
	}
	if out.Prepayments == nil {
		out.Prepayments = []PrepaymentImpact{}
	}
	if out.InterestRateChanges == nil {
		out.InterestRateChanges = []InterestRateChangeImpact{}
	}
	if out.EMIChanges == nil {
		out.EMIChanges = []EMIChangeImpact{}
	}
	return out
}
