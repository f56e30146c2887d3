package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EngineCalls счетчик вызовов обработчиков движка
	EngineCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_calls_total",
			Help: "Вызовы обработчиков расчета кредита",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// SchedulePeriods распределение длины графика
	SchedulePeriods = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_periods",
			Help:    "Количество периодов в рассчитанном графике",
			Buckets: []float64{6, 12, 24, 60, 120, 180, 240, 360, 600, 1800},
		},
		[]string{"tool_name"},
	)

	// TruncatedSimulations счетчик симуляций, остановленных предельным числом периодов
	TruncatedSimulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truncated_simulations_total",
			Help: "Симуляции, остановленные до погашения кредита",
		},
		[]string{"tool_name"},
	)

	// AppliedEvents счетчик примененных изменений по видам
	AppliedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applied_events_total",
			Help: "Примененные изменения ставки, платежа и досрочные погашения",
		},
		[]string{"kind"},
	)
)
