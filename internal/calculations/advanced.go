package calculations

import (
	"time"

	"go.uber.org/zap"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// DefaultSafetyMultiplier во сколько раз симуляция может превысить исходный срок
const DefaultSafetyMultiplier = 3

// Limits ограничения симуляции
type Limits struct {
	SafetyMultiplier int
	ProjectionCap    int
}

// DefaultLimits возвращает ограничения по умолчанию
func DefaultLimits() Limits {
	return Limits{SafetyMultiplier: DefaultSafetyMultiplier, ProjectionCap: DefaultProjectionCap}
}

// ConfigInterface определяет интерфейс для получения ограничений симуляции
type ConfigInterface interface {
	SafetyMultiplier() int
	ProjectionCap() int
}

// LimitsFrom собирает ограничения из конфигурации
func LimitsFrom(cfg ConfigInterface) Limits {
	if cfg == nil {
		return DefaultLimits()
	}
	return Limits{SafetyMultiplier: cfg.SafetyMultiplier(), ProjectionCap: cfg.ProjectionCap()}
}

// Simulator рассчитывает графики с изменениями ставки, платежа и досрочными погашениями.
// Не хранит состояния между вызовами и безопасен для параллельного использования.
type Simulator struct {
	logger *zap.Logger
	limits Limits
}

// NewSimulator создает симулятор
func NewSimulator(logger *zap.Logger, limits Limits) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.SafetyMultiplier <= 0 {
		limits.SafetyMultiplier = DefaultSafetyMultiplier
	}
	if limits.ProjectionCap <= 0 {
		limits.ProjectionCap = DefaultProjectionCap
	}
	return &Simulator{logger: logger, limits: limits}
}

// simulationContext состояние кредита, которое проходит через стадии месяца
type simulationContext struct {
	period          int
	date            time.Time
	month           int
	balance         float64
	rate            float64
	emi             float64
	remainingTenure int
	cumPrincipal    float64
}

// simulationRun владеет буферами одного вызова AdvancedSchedule
type simulationRun struct {
	sim      *Simulator
	ctx      *simulationContext
	calendar *eventCalendar
	ledger   *impactLedger
	// residue допустимый остаток округления: по центу на каждый возможный период
	residue float64
}

type stageFunc func() error

// AdvancedSchedule рассчитывает график с событиями. Каждый месяц события
// применяются в порядке: изменение ставки, изменение платежа, досрочное погашение.
func (s *Simulator) AdvancedSchedule(terms LoanTerms, events Events) (*AdvancedResult, error) {
	start, err := utils.ParseDate(terms.StartDate)
	if err != nil {
		return nil, &ValidationError{Field: "start_date", Reason: err.Error()}
	}

	events = EnsureIDs(events)
	calendar, err := newEventCalendar(start, terms.TenureMonths, events)
	if err != nil {
		return nil, err
	}

	emi := EMI(terms.Principal, terms.AnnualRatePercent, terms.TenureMonths)
	maxPeriods := s.limits.SafetyMultiplier * terms.TenureMonths
	run := &simulationRun{
		sim: s,
		ctx: &simulationContext{
			balance:         utils.Round2(terms.Principal),
			rate:            terms.AnnualRatePercent,
			emi:             emi,
			remainingTenure: terms.TenureMonths,
		},
		calendar: calendar,
		ledger:   newImpactLedger(),
		residue:  0.01 * float64(maxPeriods),
	}

	before := []stageFunc{run.rateChangeStage, run.emiChangeStage}
	schedule := make([]ScheduleEntry, 0, terms.TenureMonths)
	ctx := run.ctx

	for period := 1; period <= maxPeriods && ctx.balance > 0; period++ {
		ctx.period = period
		ctx.date = periodDate(start, period)
		ctx.month = utils.MonthIndex(ctx.date)

		for _, stage := range before {
			if err := stage(); err != nil {
				return nil, err
			}
		}

		split := run.payInstallment()
		prepaid := run.prepaymentStage()

		schedule = append(schedule, newScheduleEntry(period, ctx.date, split, prepaid, ctx.balance, ctx.cumPrincipal, ctx.rate))
	}

	summary := summarize(terms, emi, schedule)
	summary.FinalEMI = ctx.emi
	if ctx.balance > 0 {
		summary.Truncated = true
		if remaining, err := TenureFromEMI(ctx.balance, ctx.rate, ctx.emi); err == nil {
			summary.RemainingMonths = remaining
		}
		s.logger.Warn("simulation stopped at safety ceiling",
			zap.String("op", "calculations.AdvancedSchedule"),
			zap.Int("periods", len(schedule)),
			zap.Float64("balance", ctx.balance),
		)
	}

	return &AdvancedResult{
		Summary:  summary,
		Schedule: schedule,
		Impacts:  run.ledger.impacts(),
	}, nil
}

// payInstallment списывает платеж месяца с остатка до досрочного погашения.
// Последний по графику платеж закрывает остаток, только если тот меньше платежа.
func (r *simulationRun) payInstallment() installment {
	ctx := r.ctx
	split := splitInstallment(ctx.balance, ctx.rate, ctx.emi, false)
	if ctx.remainingTenure <= 1 && ctx.balance-split.principal < ctx.emi {
		split = splitInstallment(ctx.balance, ctx.rate, ctx.emi, true)
	}
	ctx.balance = utils.Round2(ctx.balance - split.principal)
	ctx.cumPrincipal = utils.Round2(ctx.cumPrincipal + split.principal)
	ctx.remainingTenure--
	return split
}

// tenureOr возвращает число оставшихся платежей или fallback, если платеж не гасит остаток
func (r *simulationRun) tenureOr(balance, annualRatePercent, emi float64, fallback int) int {
	n, err := scheduledTenure(balance, annualRatePercent, emi, r.residue)
	if err != nil {
		return fallback
	}
	return n
}

func (r *simulationRun) project(balance, annualRatePercent, emi float64) float64 {
	return ProjectInterest(balance, annualRatePercent, emi, r.sim.limits.ProjectionCap)
}
