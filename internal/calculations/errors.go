package calculations

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation базовая ошибка для некорректных входных данных
	ErrValidation = errors.New("неверные параметры")
	// ErrInsufficientEMI платеж не покрывает остаток по текущей ставке
	ErrInsufficientEMI = errors.New("недостаточный платеж")
	// ErrEMICannotAmortize платеж не превышает начисляемые проценты
	ErrEMICannotAmortize = errors.New("платеж не покрывает начисляемые проценты")
)

// ValidationError ошибка входных данных с указанием записи и поля
type ValidationError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Field, e.RecordID, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InsufficientEMIError новый платеж ниже минимально допустимого на дату изменения
type InsufficientEMIError struct {
	RecordID          string
	Date              string
	Balance           float64
	AnnualRatePercent float64
	EMI               float64
	MinimumEMI        float64
}

func (e *InsufficientEMIError) Error() string {
	return fmt.Sprintf("изменение платежа %s на %s: платеж %.2f меньше минимального %.2f (остаток %.2f, ставка %.2f%%)",
		e.RecordID, e.Date, e.EMI, e.MinimumEMI, e.Balance, e.AnnualRatePercent)
}

func (e *InsufficientEMIError) Unwrap() error {
	return ErrInsufficientEMI
}
