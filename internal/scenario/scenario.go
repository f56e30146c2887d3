package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
)

// Scenario описывает расчет, загружаемый из YAML файла
type Scenario struct {
	Tool                string                            `yaml:"tool"`
	Loan                calculations.LoanTerms            `yaml:"loan"`
	Prepayments         []calculations.Prepayment         `yaml:"prepayments"`
	InterestRateChanges []calculations.InterestRateChange `yaml:"interest_rate_changes"`
	EMIChanges          []calculations.EMIChange          `yaml:"emi_changes"`
}

// Load читает сценарий из файла
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать сценарий: %w", err)
	}
	return Parse(data)
}

// Parse разбирает сценарий из YAML
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("не удалось разобрать сценарий: %w", err)
	}
	return &s, nil
}

// Events возвращает изменения сценария
func (s *Scenario) Events() calculations.Events {
	return calculations.Events{
		Prepayments:         s.Prepayments,
		InterestRateChanges: s.InterestRateChanges,
		EMIChanges:          s.EMIChanges,
	}
}

// Params приводит сценарий к параметрам обработчика инструмента.
// Числа становятся float64, как после разбора JSON запроса.
func (s *Scenario) Params() (map[string]interface{}, error) {
	payload := struct {
		calculations.LoanTerms
		calculations.Events
	}{
		LoanTerms: s.Loan,
		Events:    s.Events(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	params := make(map[string]interface{})
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, err
	}
	return params, nil
}
