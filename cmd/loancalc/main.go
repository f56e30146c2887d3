package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/logging"
	"github.com/cloud-ru/loan-engine-go/internal/scenario"
	"github.com/cloud-ru/loan-engine-go/internal/tools"
	"github.com/cloud-ru/loan-engine-go/internal/tracing"
)

func main() {
	scenarioPath := flag.String("scenario", "", "путь к YAML файлу сценария")
	toolName := flag.String("tool", "", "инструмент расчета (по умолчанию из сценария)")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: loancalc -scenario scenario.yaml [-tool loan_schedule|loan_schedule_advanced|compare_loan_scenarios]")
		os.Exit(2)
	}

	if err := run(*scenarioPath, *toolName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scenarioPath, toolName string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdown, err := tracing.InitTracing(cfg.OTELServiceName, cfg.OTELEndpoint, logger)
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", zap.Error(err))
	} else {
		defer func() { _ = shutdown(ctx) }()
	}

	s, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	if toolName == "" {
		toolName = s.Tool
	}
	if toolName == "" {
		toolName = tools.ToolLoanScheduleAdvanced
	}

	handler, ok := tools.Handlers(cfg, tracing.Tracer, logger)[toolName]
	if !ok {
		return fmt.Errorf("unknown tool: %s", toolName)
	}

	params, err := s.Params()
	if err != nil {
		return err
	}

	logger.Info("running scenario", zap.String("tool", toolName), zap.String("scenario", scenarioPath))
	result, err := handler(ctx, params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
