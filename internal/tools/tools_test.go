package tools

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/metrics"
)

func newHandlers(t *testing.T) map[string]ToolHandler {
	t.Helper()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return Handlers(cfg, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
}

// observedPeriods число наблюдений гистограммы длины графика для инструмента
func observedPeriods(t *testing.T, toolName string) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.SchedulePeriods.WithLabelValues(toolName).(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func baseParams() map[string]interface{} {
	return map[string]interface{}{
		"principal":           100000.0,
		"annual_rate_percent": 12.0,
		"start_date":          "2024-01-01",
		"tenure_months":       12.0,
	}
}

func TestLoanScheduleHandler(t *testing.T) {
	handlers := newHandlers(t)

	out, err := handlers[ToolLoanSchedule](context.Background(), baseParams())
	require.NoError(t, err)

	result, ok := out.(*calculations.CalculationResult)
	require.True(t, ok)
	assert.Len(t, result.Schedule, 12)
	assert.Equal(t, 8884.88, result.Summary.EMI)
}

func TestLoanScheduleHandlerInvalidParams(t *testing.T) {
	handlers := newHandlers(t)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{name: "missing principal", mutate: func(p map[string]interface{}) { delete(p, "principal") }},
		{name: "principal as string", mutate: func(p map[string]interface{}) { p["principal"] = "100000" }},
		{name: "fractional tenure", mutate: func(p map[string]interface{}) { p["tenure_months"] = 12.5 }},
		{name: "negative rate", mutate: func(p map[string]interface{}) { p["annual_rate_percent"] = -1.0 }},
		{name: "bad date", mutate: func(p map[string]interface{}) { p["start_date"] = "2024-02-30" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.CalculationErrors.WithLabelValues(ToolLoanSchedule, "validation"))

			params := baseParams()
			tt.mutate(params)
			_, err := handlers[ToolLoanSchedule](context.Background(), params)
			require.Error(t, err)

			after := testutil.ToFloat64(metrics.CalculationErrors.WithLabelValues(ToolLoanSchedule, "validation"))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestAdvancedLoanScheduleHandler(t *testing.T) {
	handlers := newHandlers(t)

	params := baseParams()
	params["prepayments"] = []interface{}{
		map[string]interface{}{
			"id":         "bonus",
			"amount":     20000.0,
			"frequency":  "one_time",
			"start_date": "2024-06-01",
			"impact":     "reduce_tenure",
		},
	}

	out, err := handlers[ToolLoanScheduleAdvanced](context.Background(), params)
	require.NoError(t, err)

	result, ok := out.(*calculations.AdvancedResult)
	require.True(t, ok)
	assert.Less(t, len(result.Schedule), 12)
	require.Len(t, result.Impacts.Prepayments, 1)
	assert.Greater(t, result.Impacts.Prepayments[0].MonthsReduced, 0)
}

func TestAdvancedLoanScheduleHandlerErrors(t *testing.T) {
	handlers := newHandlers(t)

	t.Run("insufficient emi is a domain error", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.CalculationErrors.WithLabelValues(ToolLoanScheduleAdvanced, "domain"))

		params := baseParams()
		params["emi_changes"] = []interface{}{
			map[string]interface{}{"id": "cut", "emi": 100.0, "start_date": "2024-03-01"},
		}
		_, err := handlers[ToolLoanScheduleAdvanced](context.Background(), params)
		require.Error(t, err)
		assert.ErrorIs(t, err, calculations.ErrInsufficientEMI)

		after := testutil.ToFloat64(metrics.CalculationErrors.WithLabelValues(ToolLoanScheduleAdvanced, "domain"))
		assert.Equal(t, before+1, after)
	})

	t.Run("event before loan start", func(t *testing.T) {
		params := baseParams()
		params["interest_rate_changes"] = []interface{}{
			map[string]interface{}{"id": "early", "annual_rate_percent": 9.0, "effective_date": "2023-12-01", "impact": "reduce_emi"},
		}
		_, err := handlers[ToolLoanScheduleAdvanced](context.Background(), params)
		require.Error(t, err)
		assert.ErrorIs(t, err, calculations.ErrValidation)
		assert.Contains(t, err.Error(), "early")
	})

	t.Run("malformed event list", func(t *testing.T) {
		params := baseParams()
		params["prepayments"] = "not a list"
		_, err := handlers[ToolLoanScheduleAdvanced](context.Background(), params)
		require.Error(t, err)
	})
}

func TestCompareLoanScenariosHandler(t *testing.T) {
	handlers := newHandlers(t)

	params := baseParams()
	params["prepayments"] = []interface{}{
		map[string]interface{}{
			"amount":     2000.0,
			"frequency":  "monthly",
			"start_date": "2024-02-01",
			"end_date":   "2024-04-01",
			"impact":     "reduce_emi",
		},
	}

	periodsBefore := observedPeriods(t, ToolCompareScenarios)
	appliedBefore := testutil.ToFloat64(metrics.AppliedEvents.WithLabelValues("prepayment"))

	out, err := handlers[ToolCompareScenarios](context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, appliedBefore+3, testutil.ToFloat64(metrics.AppliedEvents.WithLabelValues("prepayment")))
	assert.Equal(t, periodsBefore+1, observedPeriods(t, ToolCompareScenarios))

	result, ok := out.(*calculations.ComparisonResult)
	require.True(t, ok)
	assert.Greater(t, result.InterestSaved, 0.0)
	assert.Less(t, result.EMIDifference, 0.0)
	require.Len(t, result.Impacts.Prepayments, 1)
	assert.NotEmpty(t, result.Impacts.Prepayments[0].ID)
	assert.Equal(t, 6000.0, result.Impacts.Prepayments[0].TotalPrepaymentAmount)
}
