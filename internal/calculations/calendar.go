package calculations

import (
	"time"

	"github.com/google/uuid"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// EnsureIDs присваивает UUID записям без идентификатора. Исходные срезы не меняются.
func EnsureIDs(events Events) Events {
	out := Events{
		Prepayments:         append([]Prepayment(nil), events.Prepayments...),
		InterestRateChanges: append([]InterestRateChange(nil), events.InterestRateChanges...),
		EMIChanges:          append([]EMIChange(nil), events.EMIChanges...),
	}
	for i := range out.Prepayments {
		if out.Prepayments[i].ID == "" {
			out.Prepayments[i].ID = uuid.NewString()
		}
	}
	for i := range out.InterestRateChanges {
		if out.InterestRateChanges[i].ID == "" {
			out.InterestRateChanges[i].ID = uuid.NewString()
		}
	}
	for i := range out.EMIChanges {
		if out.EMIChanges[i].ID == "" {
			out.EMIChanges[i].ID = uuid.NewString()
		}
	}
	return out
}

type prepaymentWindow struct {
	Prepayment
	from int
	to   int
}

// eventCalendar раскладывает события по календарным месяцам.
// Среди изменений одного вида в одном месяце действует последнее по порядку ввода.
type eventCalendar struct {
	rateChanges map[int]InterestRateChange
	emiChanges  map[int]EMIChange
	prepayments []prepaymentWindow
}

func newEventCalendar(start time.Time, tenureMonths int, events Events) (*eventCalendar, error) {
	cal := &eventCalendar{
		rateChanges: make(map[int]InterestRateChange, len(events.InterestRateChanges)),
		emiChanges:  make(map[int]EMIChange, len(events.EMIChanges)),
		prepayments: make([]prepaymentWindow, 0, len(events.Prepayments)),
	}
	loanEnd := utils.MonthIndex(start) + tenureMonths - 1

	for _, c := range events.InterestRateChanges {
		month, err := eventMonth(c.ID, "effective_date", c.EffectiveDate)
		if err != nil {
			return nil, err
		}
		cal.rateChanges[month] = c
	}

	for _, c := range events.EMIChanges {
		month, err := eventMonth(c.ID, "start_date", c.StartDate)
		if err != nil {
			return nil, err
		}
		cal.emiChanges[month] = c
	}

	for _, p := range events.Prepayments {
		from, err := eventMonth(p.ID, "start_date", p.StartDate)
		if err != nil {
			return nil, err
		}
		to := from
		if p.Frequency == FrequencyMonthly {
			to = loanEnd
			if p.EndDate != "" {
				if to, err = eventMonth(p.ID, "end_date", p.EndDate); err != nil {
					return nil, err
				}
			}
		}
		cal.prepayments = append(cal.prepayments, prepaymentWindow{Prepayment: p, from: from, to: to})
	}

	return cal, nil
}

func eventMonth(id, field, value string) (int, error) {
	t, err := utils.ParseDate(value)
	if err != nil {
		return 0, &ValidationError{RecordID: id, Field: field, Reason: err.Error()}
	}
	return utils.MonthIndex(t), nil
}

func (c *eventCalendar) rateChangeFor(month int) (InterestRateChange, bool) {
	change, ok := c.rateChanges[month]
	return change, ok
}

func (c *eventCalendar) emiChangeFor(month int) (EMIChange, bool) {
	change, ok := c.emiChanges[month]
	return change, ok
}

func (c *eventCalendar) prepaymentsFor(month int) []Prepayment {
	var due []Prepayment
	for _, w := range c.prepayments {
		if month >= w.from && month <= w.to {
			due = append(due, w.Prepayment)
		}
	}
	return due
}
