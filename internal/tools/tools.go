package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/metrics"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

const (
	ToolLoanSchedule         = "loan_schedule"
	ToolLoanScheduleAdvanced = "loan_schedule_advanced"
	ToolCompareScenarios     = "compare_loan_scenarios"
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Handlers возвращает все обработчики по имени инструмента
func Handlers(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) map[string]ToolHandler {
	return map[string]ToolHandler{
		ToolLoanSchedule:         LoanScheduleHandler(cfg, tracer, logger),
		ToolLoanScheduleAdvanced: AdvancedLoanScheduleHandler(cfg, tracer, logger),
		ToolCompareScenarios:     CompareLoanScenariosHandler(cfg, tracer, logger),
	}
}

// LoanScheduleHandler обрабатывает запрос на расчет графика без событий
func LoanScheduleHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLoanSchedule

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := loanTermsFromParams(params)
		if err != nil {
			return nil, fail(span, toolName, "validation", err)
		}
		setTermsAttributes(span, terms)
		metrics.EngineCalls.WithLabelValues(toolName, "started").Inc()

		if err := validators.CheckLoanTerms(cfg, terms); err != nil {
			return nil, fail(span, toolName, "validation", fmt.Errorf("неверные параметры: %w", err))
		}

		result, err := calculations.AnnuitySchedule(terms)
		if err != nil {
			return nil, fail(span, toolName, errorType(err), fmt.Errorf("ошибка при выполнении расчета: %w", err))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("emi", result.Summary.EMI),
			attribute.Float64("total_interest", result.Summary.TotalInterestPayable),
		)
		metrics.SchedulePeriods.WithLabelValues(toolName).Observe(float64(len(result.Schedule)))
		metrics.EngineCalls.WithLabelValues(toolName, "success").Inc()
		logger.Debug("schedule calculated", zap.String("tool", toolName), zap.Int("periods", len(result.Schedule)))

		return result, nil
	}
}

// AdvancedLoanScheduleHandler обрабатывает запрос на расчет графика с изменениями
func AdvancedLoanScheduleHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	simulator := calculations.NewSimulator(logger, calculations.LimitsFrom(cfg))

	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLoanScheduleAdvanced

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, events, err := prepareAdvanced(cfg, span, toolName, params)
		if err != nil {
			return nil, err
		}

		result, err := simulator.AdvancedSchedule(terms, events)
		if err != nil {
			return nil, fail(span, toolName, errorType(err), fmt.Errorf("ошибка при выполнении расчета: %w", err))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("emi", result.Summary.EMI),
			attribute.Float64("final_emi", result.Summary.FinalEMI),
			attribute.Float64("total_interest", result.Summary.TotalInterestPayable),
			attribute.Bool("truncated", result.Summary.Truncated),
		)
		observeAdvanced(toolName, result.Summary, result.Impacts)
		metrics.EngineCalls.WithLabelValues(toolName, "success").Inc()

		return result, nil
	}
}

// CompareLoanScenariosHandler обрабатывает запрос на сравнение графика без событий и с событиями
func CompareLoanScenariosHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	simulator := calculations.NewSimulator(logger, calculations.LimitsFrom(cfg))

	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareScenarios

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, events, err := prepareAdvanced(cfg, span, toolName, params)
		if err != nil {
			return nil, err
		}

		result, err := simulator.CompareScenarios(terms, events)
		if err != nil {
			return nil, fail(span, toolName, errorType(err), fmt.Errorf("ошибка при выполнении расчета: %w", err))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("interest_saved", result.InterestSaved),
			attribute.Int("months_saved", result.MonthsSaved),
		)
		observeAdvanced(toolName, result.Advanced, result.Impacts)
		metrics.EngineCalls.WithLabelValues(toolName, "success").Inc()

		return result, nil
	}
}

// prepareAdvanced разбирает и проверяет условия кредита и изменения
func prepareAdvanced(cfg *config.Config, span trace.Span, toolName string, params map[string]interface{}) (calculations.LoanTerms, calculations.Events, error) {
	terms, err := loanTermsFromParams(params)
	if err != nil {
		return terms, calculations.Events{}, fail(span, toolName, "validation", err)
	}
	events, err := eventsFromParams(params)
	if err != nil {
		return terms, events, fail(span, toolName, "validation", err)
	}
	events = calculations.EnsureIDs(events)

	setTermsAttributes(span, terms)
	span.SetAttributes(
		attribute.Int("prepayments", len(events.Prepayments)),
		attribute.Int("interest_rate_changes", len(events.InterestRateChanges)),
		attribute.Int("emi_changes", len(events.EMIChanges)),
	)
	metrics.EngineCalls.WithLabelValues(toolName, "started").Inc()

	if err := validators.CheckEvents(cfg, terms, events); err != nil {
		return terms, events, fail(span, toolName, "validation", fmt.Errorf("неверные параметры: %w", err))
	}
	return terms, events, nil
}

// observeAdvanced учитывает в метриках длину графика, остановки и примененные изменения
func observeAdvanced(toolName string, summary calculations.LoanSummary, impacts calculations.Impacts) {
	metrics.SchedulePeriods.WithLabelValues(toolName).Observe(float64(summary.TotalPayments))
	if summary.Truncated {
		metrics.TruncatedSimulations.WithLabelValues(toolName).Inc()
	}
	for _, p := range impacts.Prepayments {
		metrics.AppliedEvents.WithLabelValues("prepayment").Add(float64(p.Occurrences))
	}
	metrics.AppliedEvents.WithLabelValues("interest_rate_change").Add(float64(len(impacts.InterestRateChanges)))
	metrics.AppliedEvents.WithLabelValues("emi_change").Add(float64(len(impacts.EMIChanges)))
}

func fail(span trace.Span, toolName, errType string, err error) error {
	span.SetAttributes(attribute.String("error", errType+"_error"))
	span.SetStatus(codes.Error, err.Error())
	status := "error"
	if errType == "validation" {
		status = "validation_error"
	}
	metrics.CalculationErrors.WithLabelValues(toolName, errType).Inc()
	metrics.EngineCalls.WithLabelValues(toolName, status).Inc()
	return err
}

func errorType(err error) string {
	switch {
	case errors.Is(err, calculations.ErrValidation):
		return "validation"
	case errors.Is(err, calculations.ErrInsufficientEMI):
		return "domain"
	default:
		return "calculation"
	}
}

func setTermsAttributes(span trace.Span, terms calculations.LoanTerms) {
	span.SetAttributes(
		attribute.Float64("principal", terms.Principal),
		attribute.Float64("annual_rate_percent", terms.AnnualRatePercent),
		attribute.String("start_date", terms.StartDate),
		attribute.Int("tenure_months", terms.TenureMonths),
	)
}

func loanTermsFromParams(params map[string]interface{}) (calculations.LoanTerms, error) {
	var terms calculations.LoanTerms

	principal, ok := params["principal"].(float64)
	if !ok {
		return terms, fmt.Errorf("invalid parameter: principal")
	}
	annualRatePercent, ok := params["annual_rate_percent"].(float64)
	if !ok {
		return terms, fmt.Errorf("invalid parameter: annual_rate_percent")
	}
	startDate, ok := params["start_date"].(string)
	if !ok {
		return terms, fmt.Errorf("invalid parameter: start_date")
	}
	monthsFloat, ok := params["tenure_months"].(float64)
	if !ok || monthsFloat != float64(int(monthsFloat)) {
		return terms, fmt.Errorf("invalid parameter: tenure_months")
	}

	return calculations.LoanTerms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		StartDate:         startDate,
		TenureMonths:      int(monthsFloat),
	}, nil
}

func eventsFromParams(params map[string]interface{}) (calculations.Events, error) {
	var events calculations.Events
	if err := decodeParam(params, "prepayments", &events.Prepayments); err != nil {
		return events, err
	}
	if err := decodeParam(params, "interest_rate_changes", &events.InterestRateChanges); err != nil {
		return events, err
	}
	if err := decodeParam(params, "emi_changes", &events.EMIChanges); err != nil {
		return events, err
	}
	return events, nil
}

// decodeParam переносит необязательный список записей из params в out
func decodeParam(params map[string]interface{}, key string, out interface{}) error {
	raw, ok := params[key]
	if !ok || raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("invalid parameter: %s", key)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid parameter: %s: %w", key, err)
	}
	return nil
}
