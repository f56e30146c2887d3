package calculations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnuitySchedule(t *testing.T) {
	tests := []struct {
		name         string
		terms        LoanTerms
		wantError    bool
		checkSummary func(*testing.T, *CalculationResult)
	}{
		{
			name:  "basic annuity",
			terms: LoanTerms{Principal: 100000, AnnualRatePercent: 12, StartDate: "2024-01-01", TenureMonths: 12},
			checkSummary: func(t *testing.T, result *CalculationResult) {
				require.Len(t, result.Schedule, 12)
				assert.Equal(t, 8884.88, result.Summary.EMI)
				assert.InDelta(t, 6618.56, result.Summary.TotalInterestPayable, 0.1)
				assert.Equal(t, 0.0, result.Schedule[11].Balance)
				assert.Equal(t, "2024-12-01", result.Summary.LastPaymentDate)
				assert.Equal(t, 12, result.Summary.TotalPayments)
				assert.Equal(t, 0, result.Summary.RemainingMonths)
			},
		},
		{
			name:  "zero rate",
			terms: LoanTerms{Principal: 100000, AnnualRatePercent: 0, StartDate: "2024-01-01", TenureMonths: 10},
			checkSummary: func(t *testing.T, result *CalculationResult) {
				assert.Equal(t, 10000.0, result.Summary.EMI)
				assert.Equal(t, 0.0, result.Summary.TotalInterestPayable)
				assert.Equal(t, 100000.0, result.Summary.TotalAmountPayable)
			},
		},
		{
			name:  "zero rate with uneven split",
			terms: LoanTerms{Principal: 100000, AnnualRatePercent: 0, StartDate: "2024-01-01", TenureMonths: 3},
			checkSummary: func(t *testing.T, result *CalculationResult) {
				require.Len(t, result.Schedule, 3)
				last := result.Schedule[2]
				assert.Equal(t, 33333.34, last.Principal)
				assert.Equal(t, 33333.34, last.EMI)
				assert.Equal(t, 0.0, last.Balance)
			},
		},
		{
			name:  "period dates clamp to month end",
			terms: LoanTerms{Principal: 5000, AnnualRatePercent: 10, StartDate: "2024-01-31", TenureMonths: 3},
			checkSummary: func(t *testing.T, result *CalculationResult) {
				require.Len(t, result.Schedule, 3)
				assert.Equal(t, "2024-01-31", result.Schedule[0].Date)
				assert.Equal(t, "2024-02-29", result.Schedule[1].Date)
				assert.Equal(t, 2024, result.Schedule[1].Year)
				assert.Equal(t, 2, result.Schedule[1].Month)
				assert.Equal(t, "2024-03-31", result.Schedule[2].Date)
			},
		},
		{
			name:      "bad start date",
			terms:     LoanTerms{Principal: 1000, AnnualRatePercent: 10, StartDate: "01/02/2024", TenureMonths: 12},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AnnuitySchedule(tt.terms)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			if tt.checkSummary != nil {
				tt.checkSummary(t, result)
			}
		})
	}
}

func TestAnnuityScheduleInvariants(t *testing.T) {
	cases := []LoanTerms{
		{Principal: 100000, AnnualRatePercent: 12, StartDate: "2024-01-01", TenureMonths: 12},
		{Principal: 2500000, AnnualRatePercent: 8.5, StartDate: "2023-07-15", TenureMonths: 240},
		{Principal: 750000, AnnualRatePercent: 9.75, StartDate: "2025-03-31", TenureMonths: 61},
		{Principal: 12345.67, AnnualRatePercent: 0, StartDate: "2024-02-29", TenureMonths: 7},
	}

	for _, terms := range cases {
		result, err := AnnuitySchedule(terms)
		require.NoError(t, err)
		require.Len(t, result.Schedule, terms.TenureMonths)

		sumPrincipal := 0.0
		prev := terms.Principal
		for _, e := range result.Schedule {
			sumPrincipal += e.Principal
			assert.LessOrEqual(t, e.Balance, prev, "balance must not grow (period %d)", e.Period)
			assert.InDelta(t, e.EMI, e.Principal+e.Interest, 0.005, "period %d", e.Period)
			assert.InDelta(t, e.EMI, e.TotalPayment, 0.005)
			prev = e.Balance
		}

		tolerance := 0.01 * float64(terms.TenureMonths)
		assert.InDelta(t, terms.Principal, sumPrincipal, tolerance)
		assert.Equal(t, 0.0, result.Schedule[len(result.Schedule)-1].Balance)

		s := result.Summary
		assert.InDelta(t, s.LoanAmount+s.TotalInterestPayable, s.TotalAmountPayable, 1e-6)
		assert.InDelta(t, s.TotalAmountPayable, s.TotalOutflow, tolerance)
	}
}

func TestAnnuityScheduleLastEntryNeverOverpays(t *testing.T) {
	result, err := AnnuitySchedule(LoanTerms{Principal: 500000, AnnualRatePercent: 7.2, StartDate: "2024-04-10", TenureMonths: 36})
	require.NoError(t, err)

	last := result.Schedule[len(result.Schedule)-1]
	prev := result.Schedule[len(result.Schedule)-2]
	assert.Equal(t, prev.Balance, last.Principal)
	assert.False(t, math.Signbit(last.Balance))
}
