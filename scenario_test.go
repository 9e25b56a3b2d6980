package dcf

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/karlp-asrs/nus-apartment/date"
)

// houseScenario is the worked example: buy, renovate, lease and eventually
// sell a rental house.
func houseScenario(t *testing.T) Scenario {
	t.Helper()
	return Scenario{
		Name:          "house",
		Currency:      "USD",
		Start:         date.New(2024, time.January, 1),
		PurchasePrice: 300000,
		ClosingCosts:  5000,
		Loan:          LoanTerms{Principal: 250000, AnnualRate: 0.03, Years: 30, Payments: date.Monthly},
		Renovation:    RenovationTerms{Budget: 20000, Months: 6},
		Rent:          RentTerms{Annual: 20000, Growth: 0.04, Vacancy: 0.05},
		Expenses: []ExpenseTerms{
			{Name: "maintenance", Annual: 1200, Period: date.Monthly, Growth: 0.02},
			{Name: "insurance", Annual: 600, Period: date.SemiAnnual},
			{Name: "property tax", Annual: 3000, Period: date.Yearly, Growth: 0.02},
		},
		Appreciation: 0.03,
		Depreciation: DepreciationTerms{Years: 27.5, BuildingShare: 0.8},
		Years:        10,
	}
}

func TestAnalyzeBalanceSheetEquity(t *testing.T) {
	s := houseScenario(t)
	report, err := Analyze(s)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	sheet := report.BalanceSheet
	if sheet.Len() != s.Years {
		t.Fatalf("balance sheet has %d rows, want %d", sheet.Len(), s.Years)
	}

	// Compute the first year's closing house value and loan balance
	// independently and check that owner equity (the Total column) is their
	// difference.
	//
	// Both stock series observe on monthly anniversaries of the start date,
	// so the year's closing observation is the 11th month (December 1st).
	const k = 11
	wantValue := (s.PurchasePrice + s.Renovation.Budget) * math.Pow(1+s.Appreciation/12, k)

	payment := s.Loan.LevelPayment()
	balance := s.Loan.Principal
	for range k {
		balance = balance*(1+s.Loan.AnnualRate/12) - payment
	}

	values, _ := sheet.Column("house value")
	balances, _ := sheet.Column("loan balance")
	equity := sheet.Total()

	if math.Abs(values[0]-wantValue) > 1e-6 {
		t.Errorf("year-1 house value = %v, want %v", values[0], wantValue)
	}
	if math.Abs(balances[0]+balance) > 1e-6 { // the liability is negative
		t.Errorf("year-1 loan balance = %v, want %v", balances[0], -balance)
	}
	if math.Abs(equity[0]-(wantValue-balance)) > 1e-6 {
		t.Errorf("year-1 owner equity = %v, want %v", equity[0], wantValue-balance)
	}
}

func TestAnalyzeTables(t *testing.T) {
	s := houseScenario(t)
	report, err := Analyze(s)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for _, tc := range []struct {
		name  string
		table *Table
	}{
		{"operating cash flow", report.OperatingCashFlow},
		{"total cash flow", report.TotalCashFlow},
		{"taxable income", report.TaxableIncome},
		{"balance sheet", report.BalanceSheet},
	} {
		if tc.table.Len() != s.Years {
			t.Errorf("%s: %d rows, want %d", tc.name, tc.table.Len(), s.Years)
		}
	}

	wantOperating := []string{"rent", "maintenance", "insurance", "property tax", "total"}
	if got := report.OperatingCashFlow.Columns(); !slices.Equal(got, wantOperating) {
		t.Errorf("operating columns = %v, want %v", got, wantOperating)
	}

	// Straight-line depreciation of the building share plus renovation.
	dep, ok := report.TaxableIncome.Column("depreciation")
	if !ok {
		t.Fatal("taxable income misses the depreciation column")
	}
	want := -(s.PurchasePrice*s.Depreciation.BuildingShare + s.Renovation.Budget) / s.Depreciation.Years
	for y, got := range dep {
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("depreciation year %d = %v, want %v", y, got, want)
		}
	}

	// The first year carries the equity outlay and the renovation, so the
	// total cash flow must be deeply negative.
	total := report.TotalCashFlow.Total()
	if total[0] >= 0 {
		t.Errorf("year-1 total cash flow = %v, want negative", total[0])
	}

	// A leveraged rental bought at a fair price lands on a plausible return.
	if report.IRR < -0.5 || report.IRR > 0.5 {
		t.Errorf("IRR = %v, want within (-50%%, 50%%)", report.IRR)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	s := houseScenario(t)
	a, err := Analyze(s)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	b, err := Analyze(s)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if a.IRR != b.IRR {
		t.Errorf("IRR differs across runs: %v != %v", a.IRR, b.IRR)
	}
	if !almostEqual(a.TotalCashFlow.Total(), b.TotalCashFlow.Total()) {
		t.Error("total cash flow differs across runs")
	}
}

func TestAnalyzeNoLoanNoRenovation(t *testing.T) {
	s := Scenario{
		Name:          "cash purchase",
		Currency:      "USD",
		Start:         date.New(2024, time.January, 1),
		PurchasePrice: 100000,
		Rent:          RentTerms{Annual: 12000},
		Appreciation:  0.02,
		Years:         5,
	}
	report, err := Analyze(s)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := report.BalanceSheet.Columns(); !slices.Equal(got, []string{"house value", "total"}) {
		t.Errorf("balance sheet columns = %v", got)
	}
	// With no leverage, equity equals the house value.
	values, _ := report.BalanceSheet.Column("house value")
	if !almostEqual(values, report.BalanceSheet.Total()) {
		t.Error("equity should equal house value without a loan")
	}
}

func TestAnalyzeInvalidScenario(t *testing.T) {
	base := houseScenario(t)
	for _, tc := range []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"missing start", func(s *Scenario) { s.Start = date.Date{} }},
		{"zero price", func(s *Scenario) { s.PurchasePrice = 0 }},
		{"zero holding period", func(s *Scenario) { s.Years = 0 }},
		{"vacancy out of range", func(s *Scenario) { s.Rent.Vacancy = 1 }},
		{"renovation without duration", func(s *Scenario) { s.Renovation.Months = 0 }},
		{"negative loan rate", func(s *Scenario) { s.Loan.AnnualRate = -0.01 }},
		{"nameless expense", func(s *Scenario) { s.Expenses[0].Name = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			s.Expenses = slices.Clone(base.Expenses)
			tc.mutate(&s)
			if _, err := Analyze(s); err == nil {
				t.Error("Analyze() expected an error")
			}
		})
	}
}
