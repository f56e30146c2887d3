package calculations

// Impact политика влияния изменения на кредит
type Impact string

const (
	// ImpactReduceTenure сохраняет платеж и сокращает срок
	ImpactReduceTenure Impact = "reduce_tenure"
	// ImpactReduceEMI сохраняет срок и уменьшает платеж
	ImpactReduceEMI Impact = "reduce_emi"
)

// Frequency периодичность досрочного погашения
type Frequency string

const (
	FrequencyOneTime Frequency = "one_time"
	FrequencyMonthly Frequency = "monthly"
)

// LoanTerms представляет базовые условия кредита
type LoanTerms struct {
	Principal         float64 `json:"principal" yaml:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	StartDate         string  `json:"start_date" yaml:"start_date"`
	TenureMonths      int     `json:"tenure_months" yaml:"tenure_months"`
}

// Prepayment представляет досрочное погашение (разовое или ежемесячное)
type Prepayment struct {
	ID        string    `json:"id" yaml:"id"`
	Amount    float64   `json:"amount" yaml:"amount"`
	Frequency Frequency `json:"frequency" yaml:"frequency"`
	StartDate string    `json:"start_date" yaml:"start_date"`
	EndDate   string    `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Impact    Impact    `json:"impact" yaml:"impact"`
}

// InterestRateChange представляет изменение процентной ставки
type InterestRateChange struct {
	ID                string  `json:"id" yaml:"id"`
	AnnualRatePercent float64 `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	EffectiveDate     string  `json:"effective_date" yaml:"effective_date"`
	Impact            Impact  `json:"impact" yaml:"impact"`
}

// EMIChange представляет изменение ежемесячного платежа
type EMIChange struct {
	ID        string  `json:"id" yaml:"id"`
	EMI       float64 `json:"emi" yaml:"emi"`
	StartDate string  `json:"start_date" yaml:"start_date"`
}

// Events набор изменений, применяемых в ходе симуляции
type Events struct {
	Prepayments         []Prepayment         `json:"prepayments,omitempty" yaml:"prepayments,omitempty"`
	InterestRateChanges []InterestRateChange `json:"interest_rate_changes,omitempty" yaml:"interest_rate_changes,omitempty"`
	EMIChanges          []EMIChange          `json:"emi_changes,omitempty" yaml:"emi_changes,omitempty"`
}

// Count возвращает общее количество событий
func (e Events) Count() int {
	return len(e.Prepayments) + len(e.InterestRateChanges) + len(e.EMIChanges)
}

// ScheduleEntry представляет одну запись в графике платежей
type ScheduleEntry struct {
	Period              int     `json:"period"`
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	Date                string  `json:"date"`
	EMI                 float64 `json:"emi"`
	Interest            float64 `json:"interest"`
	Principal           float64 `json:"principal"`
	Prepayment          float64 `json:"prepayment"`
	Balance             float64 `json:"balance"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
	TotalPayment        float64 `json:"total_payment"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
}

// LoanSummary представляет сводку по кредиту
type LoanSummary struct {
	LoanAmount           float64 `json:"loan_amount"`
	AnnualRatePercent    float64 `json:"annual_rate_percent"`
	EMI                  float64 `json:"emi"`
	TotalInterestPayable float64 `json:"total_interest_payable"`
	TotalAmountPayable   float64 `json:"total_amount_payable"`
	TotalOutflow         float64 `json:"total_outflow"`
	LastPaymentDate      string  `json:"last_payment_date"`
	TotalPayments        int     `json:"total_payments"`
	TotalPrepayment      float64 `json:"total_prepayment"`
	RemainingMonths      int     `json:"remaining_months"`
	FinalRatePercent     float64 `json:"final_rate_percent"`
	FinalEMI             float64 `json:"final_emi"`
	Truncated            bool    `json:"truncated"`
}

// PrepaymentImpact накопленный эффект досрочных погашений с одним идентификатором
type PrepaymentImpact struct {
	ID                    string  `json:"id"`
	Impact                Impact  `json:"impact"`
	TotalPrepaymentAmount float64 `json:"total_prepayment_amount"`
	InterestSaved         float64 `json:"interest_saved"`
	MonthsReduced         int     `json:"months_reduced"`
	EMIReduced            float64 `json:"emi_reduced"`
	Occurrences           int     `json:"occurrences"`
}

// InterestRateChangeImpact эффект изменения ставки.
// InterestImpact > 0 означает рост переплаты.
type InterestRateChangeImpact struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Impact         Impact  `json:"impact"`
	OldRate        float64 `json:"old_rate"`
	NewRate        float64 `json:"new_rate"`
	OldEMI         float64 `json:"old_emi"`
	NewEMI         float64 `json:"new_emi"`
	TenureChange   int     `json:"tenure_change"`
	InterestImpact float64 `json:"interest_impact"`
}

// EMIChangeImpact эффект изменения платежа
type EMIChangeImpact struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	OldEMI         float64 `json:"old_emi"`
	NewEMI         float64 `json:"new_emi"`
	TenureChange   int     `json:"tenure_change"`
	InterestImpact float64 `json:"interest_impact"`
}

// Impacts эффекты всех изменений, по одной записи на идентификатор
type Impacts struct {
	Prepayments         []PrepaymentImpact         `json:"prepayment_impacts"`
	InterestRateChanges []InterestRateChangeImpact `json:"interest_rate_change_impacts"`
	EMIChanges          []EMIChangeImpact          `json:"emi_change_impacts"`
}

// CalculationResult представляет результат расчета кредита без событий
type CalculationResult struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// AdvancedResult представляет результат расчета кредита с событиями
type AdvancedResult struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
	Impacts  Impacts         `json:"impacts"`
}

// ComparisonResult представляет сравнение графика без событий и с событиями
type ComparisonResult struct {
	Base           LoanSummary `json:"base"`
	Advanced       LoanSummary `json:"advanced"`
	InterestSaved  float64     `json:"interest_saved"`
	MonthsSaved    int         `json:"months_saved"`
	EMIDifference  float64     `json:"emi_difference"`
	Recommendation string      `json:"recommendation"`
	Impacts        Impacts     `json:"impacts"`
}
